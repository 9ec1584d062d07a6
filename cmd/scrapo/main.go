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

	"github.com/use-agent/scrapo/api"
	"github.com/use-agent/scrapo/cache"
	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/runner"
	"github.com/use-agent/scrapo/scraper"
)

func main() {
	cfg := config.Load()

	config.InitLogger(cfg.Log, os.Stdout)
	slog.Info("scrapo starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	session, err := scraper.Launch(cfg.Browser, cfg.Scraper, cfg.Runner)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	run := runner.New(session, cfg.Scraper, cfg.Runner)
	cc := cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	startTime := time.Now()
	router := api.NewRouter(session, run, cc, cfg, startTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// session.Close() runs via defer and kills Chrome.
	slog.Info("scrapo stopped")
}
