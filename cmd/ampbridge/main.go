// cmd/ampbridge/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/amp-bridge/internal/bridge"
	"github.com/tamzrod/amp-bridge/internal/capture"
	"github.com/tamzrod/amp-bridge/internal/config"
	"github.com/tamzrod/amp-bridge/internal/logging"
	"github.com/tamzrod/amp-bridge/internal/metrics"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
	"github.com/tamzrod/amp-bridge/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ampbridge <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)
	b := cfg.Bridge

	logger, err := logging.New(b.Log.Level)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build pipeline
	// --------------------

	// ---- poller ----
	p, closePoller, err := poller.Build(b, logger.Named("poller"))
	if err != nil {
		logger.Fatalw("poller build failed", "source", b.Source.Kind, "address", b.Source.Address, "error", err)
	}
	defer closePoller()

	// ---- status writer (optional) ----
	statusWriter, closeWriter, err := writer.Build(b.Output)
	if err != nil {
		logger.Fatalw("status writer build failed", "endpoint", b.Output.Endpoint, "error", err)
	}
	defer closeWriter()

	store := &record.Store{}
	exporter := metrics.NewExporter(store)

	// ---- capture (optional) ----
	var cw *capture.Writer
	if b.Capture.Path != "" {
		cw, err = capture.Create(b.Capture.Path)
		if err != nil {
			logger.Fatalw("capture open failed", "path", b.Capture.Path, "error", err)
		}
		defer func() {
			if err := cw.Close(); err != nil {
				logger.Warnw("capture close failed", "error", err)
			}
			logger.Infow("capture closed", "path", b.Capture.Path, "frames", cw.Frames())
		}()
	}

	// ---- metrics endpoint (optional) ----
	if b.Metrics.Listen != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(exporter)

		mux := http.NewServeMux()
		mux.Handle(b.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: b.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			logger.Infow("metrics listening", "listen", b.Metrics.Listen, "path", b.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorw("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	br := &bridge.Bridge{
		Store:    store,
		Tracker:  status.NewTracker(time.Duration(b.Poll.StaleAfterMs) * time.Millisecond),
		Status:   statusWriter,
		Exporter: exporter,
		Capture:  cw,
		Log:      logger.Named("bridge"),
	}

	// ---- channel between poller and bridge ----
	out := make(chan poller.PollResult)

	// poller producer
	go p.Run(ctx, out)

	logger.Infow("bridge started",
		"source", b.Source.Kind,
		"address", b.Source.Address,
		"sections", b.Sections,
		"output", b.Output.Kind,
	)

	// Orchestrator blocks until shutdown or end of replay.
	br.Run(ctx, out)
	stop()

	logger.Infow("bridge stopped")
}
