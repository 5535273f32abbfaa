package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/UnknownOlympus/mapquest/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("MAPQUEST_ENV", "local")
	t.Setenv("MAPQUEST_API_KEY", "testAPIKey")
	t.Setenv("MAPQUEST_BASE_URL", "https://geocoding.test/v1")
	t.Setenv("MAPQUEST_TIMEOUT", "3s")
	t.Setenv("MAPQUEST_METRICS_FILE", "/tmp/mapquest.prom")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, "https://geocoding.test/v1", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/mapquest.prom", cfg.MetricsFile)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, geocoding.BaseURL, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.MetricsFile)
}

func TestMustLoad_DotEnvFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	filet.File(t, filepath.Join(dir, ".env"), "MAPQUEST_API_KEY=fromDotEnv\nMAPQUEST_ENV=development\n")
	t.Chdir(dir)
	t.Setenv("MAPQUEST_ENV", "local")

	cfg := config.MustLoad()

	assert.Equal(t, "fromDotEnv", cfg.APIKey)
	assert.Equal(t, "local", cfg.Env, "environment must win over .env")
}

func TestMustLoadWithFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MAPQUEST_API_KEY", "envKey")
	t.Setenv("MAPQUEST_TIMEOUT", "5s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-key", "", "")
	flags.Duration("timeout", 0, "")
	flags.String("unrelated", "", "")
	assert.NoError(t, flags.Parse([]string{"--api-key", "flagKey"}))

	cfg := config.MustLoadWithFlags(flags)

	assert.Equal(t, "flagKey", cfg.APIKey, "a set flag must win over the environment")
	assert.Equal(t, 5*time.Second, cfg.Timeout, "an unset flag must not shadow the environment")
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("MAPQUEST_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse timeout from configuration", func() {
		config.MustLoad()
	})
}
