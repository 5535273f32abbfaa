package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/mapquest/geocoding"
	"github.com/UnknownOlympus/mapquest/internal/config"
	"github.com/UnknownOlympus/mapquest/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

var errUsage = errors.New("either --address or both --lat and --lng must be given")

// query is what the user asked for on the command line.
type query struct {
	address string
	lat     float32
	lng     float32
	reverse bool
	format  string
}

// main is the entry point of the application.
func main() {
	// Cancel the in-flight request on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flags := pflag.NewFlagSet("mapquest", pflag.ExitOnError)
	address := flags.String("address", "", "address to geocode")
	lat := flags.Float32("lat", 0, "latitude to reverse geocode")
	lng := flags.Float32("lng", 0, "longitude to reverse geocode")
	format := flags.String("format", formatTable, "output format: table or json")
	flags.String("env", "", "environment: local, development, production")
	flags.String("api-key", "", "MapQuest API key")
	flags.String("base-url", "", "geocoding API base URL")
	flags.Duration("timeout", 0, "HTTP request timeout")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile after the call")
	_ = flags.Parse(os.Args[1:])

	// Load application configuration.
	cfg := config.MustLoadWithFlags(flags)

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env, os.Stderr)

	qry, err := parseQuery(flags, *address, *lat, *lng, *format)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid arguments", "error", err)
		flags.PrintDefaults()
		os.Exit(2)
	}

	// Create a separate registry for the client metrics.
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	client := geocoding.NewWithTransport(
		geocoding.NewDefaultHTTPTransport(cfg.Timeout),
		cfg.BaseURL,
		cfg.APIKey,
		logger,
	).WithObserver(appMetrics)

	runErr := run(ctx, logger, client, qry, os.Stdout)

	if cfg.MetricsFile != "" {
		if err = prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Geocoding failed", "error", runErr)
		os.Exit(1)
	}
}

// parseQuery validates the combination of query flags.
func parseQuery(flags *pflag.FlagSet, address string, lat, lng float32, format string) (query, error) {
	if format != formatTable && format != formatJSON {
		return query{}, fmt.Errorf("unsupported output format: %s", format)
	}

	hasLat, hasLng := flags.Changed("lat"), flags.Changed("lng")

	switch {
	case address != "" && (hasLat || hasLng):
		return query{}, errUsage
	case address != "":
		return query{address: address, format: format}, nil
	case hasLat && hasLng:
		return query{lat: lat, lng: lng, reverse: true, format: format}, nil
	default:
		return query{}, errUsage
	}
}

// run performs the requested call and renders the response to out.
// A non-zero status in the response envelope is logged but is not an error.
func run(ctx context.Context, log *slog.Logger, client *geocoding.Client, qry query, out io.Writer) error {
	if qry.reverse {
		resp, err := client.ReverseGeocode(ctx, qry.lat, qry.lng)
		if err != nil {
			return err
		}
		warnOnStatus(ctx, log, resp.Info.Succeeded(), resp.Info.StatusCode, resp.Info.Messages)
		return render(out, qry.format, resp.Info, reverseGroups(resp), resp)
	}

	resp, err := client.Geocode(ctx, qry.address)
	if err != nil {
		return err
	}
	warnOnStatus(ctx, log, resp.Info.Succeeded(), resp.Info.StatusCode, resp.Info.Messages)
	return render(out, qry.format, resp.Info, geocodeGroups(resp), resp)
}

func warnOnStatus(ctx context.Context, log *slog.Logger, ok bool, code uint32, messages []string) {
	if ok {
		return
	}
	log.WarnContext(ctx, "Geocoding service reported a failure status",
		"status", code, "messages", fmt.Sprint(messages))
}

// setupLogger initializes and returns a logger based on the environment provided.
// Logs go to w so that stdout only carries the command output.
func setupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
