package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the geocoding command.
//
// Fields:
// - Env: The current environment (local, development, production).
// - APIKey: The MapQuest application key.
// - BaseURL: The geocoding API root the endpoints are appended to.
// - Timeout: Upper bound for a single HTTP request.
// - MetricsFile: Path of a Prometheus textfile to write after a call, empty to disable.
type Config struct {
	Env         string        // Env is the current environment: local, dev, prod.
	APIKey      string        // The API key for accessing the geocoding service.
	BaseURL     string        // The geocoding API root.
	Timeout     time.Duration // Timeout of the HTTP transport.
	MetricsFile string        // Textfile collector output, optional.
}

const envPrefix = "MAPQUEST"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"env":          "env",
	"api-key":      "api_key",
	"base-url":     "base_url",
	"timeout":      "timeout",
	"metrics-file": "metrics_file",
}

var defaults = map[string]string{
	"env":          "production",
	"api_key":      "",
	"base_url":     geocoding.BaseURL,
	"timeout":      "10s",
	"metrics_file": "",
}

// MustLoad loads the configuration from the environment and an optional .env
// file in the working directory.
func MustLoad() *Config {
	return MustLoadWithFlags(nil)
}

// MustLoadWithFlags is MustLoad with command-line flags layered on top.
// Precedence: flags set on the command line, then environment variables,
// then the .env file, then defaults.
func MustLoadWithFlags(flags *pflag.FlagSet) *Config {
	vpr := viper.New()
	vpr.SetEnvPrefix(envPrefix)
	vpr.AutomaticEnv()

	for key, value := range defaults {
		vpr.SetDefault(key, value)
	}

	// .env values only fill in what the environment leaves unset.
	if dotenv, err := godotenv.Read(); err == nil {
		for key := range defaults {
			if value, ok := dotenv[envPrefix+"_"+strings.ToUpper(key)]; ok {
				vpr.SetDefault(key, value)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		panic("failed to read .env file")
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := vpr.BindPFlag(key, flag); err != nil {
				panic("failed to bind command-line flags")
			}
		}
	}

	timeout, err := time.ParseDuration(vpr.GetString("timeout"))
	if err != nil {
		panic("failed to parse timeout from configuration")
	}

	return &Config{
		Env:         vpr.GetString("env"),
		APIKey:      vpr.GetString("api_key"),
		BaseURL:     vpr.GetString("base_url"),
		Timeout:     timeout,
		MetricsFile: vpr.GetString("metrics_file"),
	}
}
