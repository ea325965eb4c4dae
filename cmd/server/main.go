package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/grafbreak/internal/api"
	"github.com/dgallion1/grafbreak/internal/config"
	"github.com/dgallion1/grafbreak/internal/pipeline"
	"github.com/dgallion1/grafbreak/internal/source"
	"github.com/dgallion1/grafbreak/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadFile(os.Getenv("GRAFBREAK_CONFIG"))
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := source.NewClient(cfg.FetchTimeout, cfg.MaxUploadBytes)
	layoutStats := stats.NewLayoutStats(time.Hour)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, fetcher, layoutStats, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, layoutStats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown. HTTP goes first so nothing submits to a closed queue.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "error", err)
		}

		orch.Stop()
		fetcher.Close()
	}()

	log.Info("starting grafbreak",
		"port", cfg.Port,
		"target_width", cfg.TargetWidth,
		"ratio_max", cfg.RatioMax,
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
