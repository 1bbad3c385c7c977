package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clobwatch/polymarket-data/internal/config"
	"github.com/clobwatch/polymarket-data/internal/gamma"
	"github.com/clobwatch/polymarket-data/internal/metrics"
	"github.com/clobwatch/polymarket-data/internal/sink"
	"github.com/clobwatch/polymarket-data/internal/stream"
	"github.com/clobwatch/polymarket-data/internal/version"
)

func main() {
	slug := flag.String("slug", "", "market or event slug to record (required)")
	outDir := flag.String("out", "", "output directory for the CSV log (default from config)")
	printEvery := flag.Int("print-every", -1, "log every Nth update, 0 disables (default from config)")
	debugKeys := flag.Bool("debug-keys", false, "debug logging, including Gamma payload keys when token extraction fails")
	configPath := flag.String("config", "", "path to config file (optional)")
	metricsPort := flag.Int("metrics-port", -1, "serve /healthz and /metrics on this port, 0 disables (default from config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Set up structured logging
	level := slog.LevelInfo
	if *debugKeys {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *slug == "" {
		logger.Error("missing required -slug flag")
		flag.Usage()
		os.Exit(2)
	}

	// Load configuration
	var cfg *config.RecorderConfig
	if *configPath != "" {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	// Flags override the per-run knobs.
	if *outDir != "" {
		cfg.Sink.Dir = *outDir
	}
	if *printEvery >= 0 {
		cfg.Session.PrintEvery = *printEvery
	}
	if *metricsPort >= 0 {
		cfg.Metrics.Port = *metricsPort
	}

	logger.Info("starting recorder",
		"version", version.Version,
		"commit", version.Commit,
		"instance_id", cfg.Instance.ID,
		"slug", *slug,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Resolve the slug to CLOB token IDs.
	client := gamma.NewClient(
		cfg.Gamma.BaseURL,
		gamma.WithLogger(logger),
		gamma.WithTimeout(cfg.Gamma.Timeout),
		gamma.WithRetries(cfg.Gamma.MaxRetries, time.Second),
		gamma.WithRateLimit(cfg.Gamma.RateLimit, cfg.Gamma.RateBurst),
		gamma.WithDebug(*debugKeys),
	)

	desc, err := client.ResolveSlug(ctx, *slug)
	if err != nil {
		logger.Error("failed to resolve slug", "slug", *slug, "error", err)
		os.Exit(1)
	}

	logger.Info("market resolved",
		"question", desc.Question,
		"tokens", len(desc.AssetIDs),
	)
	for i, id := range desc.AssetIDs {
		logger.Info("token", "outcome", desc.OutcomeLabel(i), "id", id)
	}

	// Open the sink before connecting so a bad output path fails fast.
	csvSink, err := sink.Open(cfg.Sink.Dir, cfg.Sink.Filename)
	if err != nil {
		logger.Error("failed to open sink", "error", err)
		os.Exit(1)
	}

	logger.Info("sink open", "path", csvSink.Path())

	reg := metrics.NewRegistry()

	session := stream.NewSession(stream.SessionConfig{
		Client: stream.ClientConfig{
			URL:              cfg.Feed.URL,
			HandshakeTimeout: cfg.Feed.HandshakeTimeout,
			PingInterval:     cfg.Feed.PingInterval,
			PongTimeout:      cfg.Feed.PongTimeout,
			CloseTimeout:     cfg.Feed.CloseTimeout,
			WriteTimeout:     cfg.Feed.WriteTimeout,
			BufferSize:       cfg.Feed.BufferSize,
		},
		IdleTimeout:   cfg.Session.IdleTimeout,
		ReconnectBase: cfg.Session.ReconnectBaseDelay,
		ReconnectMax:  cfg.Session.ReconnectMaxDelay,
		PrintEvery:    cfg.Session.PrintEvery,
		MaxRawLen:     cfg.Session.MaxRawLen,
	}, desc, csvSink, reg, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return session.Run(gctx)
	})

	if cfg.Metrics.Port > 0 {
		opsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: createOpsHandler(session, reg, cfg.Metrics.Path),
		}

		g.Go(func() error {
			logger.Info("starting ops server", "port", cfg.Metrics.Port, "metrics_path", cfg.Metrics.Path)
			if err := opsServer.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return opsServer.Shutdown(shutdownCtx)
		})
	}

	runErr := g.Wait()

	if err := csvSink.Close(); err != nil {
		logger.Error("failed to close sink", "error", err)
	}

	stats := session.Stats()
	logger.Info("recorder stopped",
		"frames", stats.Frames,
		"updates", stats.Updates,
		"records_written", stats.RecordsWritten,
		"reconnects", stats.Reconnects,
	)

	if runErr != nil {
		logger.Error("recorder failed", "error", runErr)
		os.Exit(1)
	}
}

// createOpsHandler serves health and metrics for one recording session.
func createOpsHandler(session *stream.Session, reg *metrics.Registry, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := session.Stats()

		health := struct {
			Status string `json:"status"`
			stream.Stats
		}{
			Status: "healthy",
			Stats:  stats,
		}
		if !stats.Connected {
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	mux.Handle(metricsPath, reg.Handler())

	return mux
}
