package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/pagescrape/api"
	"github.com/use-agent/pagescrape/config"
	"github.com/use-agent/pagescrape/logging"
	"github.com/use-agent/pagescrape/scraper"
)

// drainTimeout bounds how long in-flight scrapes may finish after a signal.
const drainTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Init(cfg.Log, os.Stdout)

	if err := run(cfg); err != nil {
		slog.Error("pagescrape exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc, err := scraper.NewScraper(cfg.Scraper)
	if err != nil {
		return fmt.Errorf("init scraper: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(sc, cfg, time.Now()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("serving scrape API",
			"addr", srv.Addr,
			"fetchTimeout", cfg.Scraper.FetchTimeout,
			"maxHTMLLength", cfg.Scraper.MaxHTMLLength,
			"tlsFingerprint", cfg.Scraper.TLSFingerprint,
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("draining scrape requests", "timeout", drainTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
