// Gavel - Court office productivity analytics.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtmetrics/gavel/internal/alerts"
	"github.com/courtmetrics/gavel/internal/api"
	"github.com/courtmetrics/gavel/internal/config"
	"github.com/courtmetrics/gavel/internal/domain"
	"github.com/courtmetrics/gavel/internal/metrics"
	"github.com/courtmetrics/gavel/internal/state"
	"github.com/courtmetrics/gavel/internal/store"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logLevel := parseLevel(cfg.Logging.Level)
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	slog.SetDefault(slog.New(handler))

	// Log startup
	slog.Info("starting gavel",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	slog.Info("configuration loaded",
		"store", cfg.Store.Driver,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize Store
	st, err := store.New(cfg.Store)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("store initialized", "driver", cfg.Store.Driver)

	// Initialize Alert Engine
	engine, err := alerts.NewEngine(cfg.Alerts.Workers)
	if err != nil {
		slog.Error("failed to initialize alert engine", "error", err)
		os.Exit(1)
	}
	slog.Info("alert engine initialized", "rules_count", engine.RulesCount())

	// Initialize Metrics
	m := metrics.New()

	// Initialize Workspace
	ws := state.New()

	// Initialize Server
	srv := api.NewServer(*cfg, st, ws, engine, m, Version)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("gavel is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("gavel shutdown complete")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════╗")
	fmt.Println("  ║               ⚖️  GAVEL                    ║")
	fmt.Println("  ║    Court Productivity Analytics           ║")
	fmt.Println("  ║     Every case accounted for.             ║")
	fmt.Println("  ╚═══════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Store:    %s\n", cfg.Store.Driver)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    POST /ingest/ledger          - Upload monthly productivity sheet")
	fmt.Println("    POST /ingest/cases           - Upload case list sheet")
	fmt.Println("    GET  /datasets/ledger        - Current ledger dataset")
	fmt.Println("    GET  /datasets/cases         - Current case dataset")
	fmt.Println("    GET  /analytics/ledger       - Productivity analytics")
	fmt.Println("    GET  /analytics/cases        - Jurimetrics analytics")
	fmt.Println("    GET  /alerts                 - Case alerts")
	fmt.Println("    GET  /reports/ledger         - Printable HTML report")
	fmt.Println("    GET  /summary                - Dataset summary")
	fmt.Println("    GET  /health                 - Health check")
	fmt.Println()
}
