// Command roster is an interactive shell over the roster core.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rostercore/internal/blob"
	"rostercore/internal/config"
	"rostercore/internal/core"
	"rostercore/internal/parser"
	"rostercore/internal/platform/otel"
	"rostercore/plugins/groupcap"
)

const serviceName = "roster"

var (
	exitFunc      = os.Exit
	newLineReader = newLinerReader
)

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var historyPath string
	fs.StringVar(&historyPath, "history", "", "file to load and save prompt history (disabled when empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "roster: %v\n", err)
		return 2
	}
	if err := run(context.Background(), cfg, historyPath, stdout, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "roster: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, historyPath string, stdout, stderr io.Writer) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	tracer, shutdownTracing, err := otel.Setup(ctx, otel.Settings{
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", "error", err)
		}
	}()

	store, err := core.OpenPersistentStore(ctx, cfg.Storage(), core.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	blobs, err := blob.Open(ctx, cfg.Blob())
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("open blob store: %w", err)
	}

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithTracer(core.NewOTelTracer(tracer)),
		core.WithBlobStore(blobs),
		core.WithGroupAllocator(core.NewGroupAllocator(cfg.TotalGroups, nil)),
	}
	var stopMetrics func()
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec, err := core.NewPrometheusMetricsRecorder(reg)
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("metrics: %w", err)
		}
		opts = append(opts, core.WithMetricsRecorder(rec))
		_, stopMetrics, err = serveMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			_ = store.Close()
			return err
		}
		defer stopMetrics()
	}

	svc := core.NewService(store, opts...)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("close store", "error", err)
		}
	}()
	if cfg.GroupCapacity > 0 {
		if _, err := svc.InstallPlugin(groupcap.New(cfg.GroupCapacity)); err != nil {
			return fmt.Errorf("install groupcap: %w", err)
		}
	}
	logger.Info("roster ready", "storage", cfg.StorageDriver, "blob", cfg.BlobDriver,
		"persons", len(svc.FilteredPersons()), "events", len(svc.Events()))

	lines := newLineReader(historyPath)
	defer func() { _ = lines.Close() }()
	return repl(ctx, svc, parser.New(svc.Groups()), lines, stdout)
}

// serveMetrics exposes reg on addr/metrics until the returned stop func is
// called. It returns the bound address.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	bound := ln.Addr().String()
	logger.Info("metrics listening", "addr", bound)
	return bound, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
