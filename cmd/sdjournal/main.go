package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dynoinc/sdjournal"
	"github.com/dynoinc/sdjournal/internal/source"
	"github.com/dynoinc/sdjournal/raw"
)

type config struct {
	Source        string `default:"journal://"`
	Output        string `default:"short"`
	MetricsAddr   string `split_words:"true"`
	LogTarget     string `split_words:"true" default:"stderr"`
	DataThreshold uint64 `split_words:"true" default:"65536"`

	sdjournal.Config
}

type app struct {
	cfg   config
	debug bool

	lib    *sdjournal.Library
	server *http.Server
	stderr io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.ErrorContext(ctx, "error loading .env file", "error", err)
		os.Exit(1)
	}

	var c config
	if err := envconfig.Process("sdjournal", &c); err != nil {
		slog.ErrorContext(ctx, "error processing environment variables", "error", err)
		os.Exit(1)
	}

	a := &app{cfg: c, stderr: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup runs before every command that touches the journal.
func (a *app) setup(ctx context.Context) error {
	if a.lib == nil {
		lib, err := sdjournal.NewLibrary(raw.Default(), a.cfg.Config)
		if err != nil {
			return fmt.Errorf("setting up library: %w", err)
		}
		a.lib = lib
	}

	// Logging setup
	logger, err := a.logger()
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	slog.DebugContext(ctx, "starting sdjournal", "version", versioninfo.Short(), "source", a.cfg.Source)

	// Metrics setup
	if a.cfg.MetricsAddr != "" {
		if err := a.serveMetrics(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) logger() (*slog.Logger, error) {
	shortfile := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			s := a.Value.Any().(*slog.Source)
			s.File = path.Base(s.File)
		}
		return a
	}

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}

	switch a.cfg.LogTarget {
	case "", "stderr":
		if a.debug {
			return slog.New(tint.NewHandler(a.stderr, &tint.Options{
				AddSource:   true,
				Level:       slog.LevelDebug,
				TimeFormat:  time.Kitchen,
				ReplaceAttr: shortfile,
			})), nil
		}
		return slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{
			AddSource:   true,
			ReplaceAttr: shortfile,
		})), nil
	case "journal":
		return slog.New(sdjournal.NewHandler(a.lib, &sdjournal.HandlerOptions{
			Level:      level,
			AddSource:  true,
			Identifier: "sdjournal",
		})), nil
	default:
		return nil, fmt.Errorf("unsupported log target: %s", a.cfg.LogTarget)
	}
}

func (a *app) serveMetrics(ctx context.Context) error {
	promExporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("setting up Prometheus exporter: %w", err)
	}
	meterProvider := metric.NewMeterProvider(metric.WithReader(promExporter))
	otel.SetMeterProvider(meterProvider)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", promhttp.Handler().ServeHTTP)
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"version": %q}`, versioninfo.Short())
	})

	// Create server with h2c support for unencrypted HTTP/2
	server := &http.Server{
		Addr:    a.cfg.MetricsAddr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}
	a.server = server

	go func() {
		slog.InfoContext(ctx, "starting metrics server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()
	return nil
}

func (a *app) teardown(ctx context.Context) {
	if a.server == nil {
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "metrics server shutdown failed", "error", err)
	}
	a.server = nil
}

func (a *app) open() (*sdjournal.Journal, error) {
	j, err := source.Open(a.lib, a.cfg.Source)
	if err != nil {
		return nil, err
	}
	if err := j.SetDataThreshold(a.cfg.DataThreshold); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}
