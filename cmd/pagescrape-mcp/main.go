package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/pagescrape/api/handler"
	"github.com/use-agent/pagescrape/config"
	"github.com/use-agent/pagescrape/logging"
	"github.com/use-agent/pagescrape/mcpserver"
	"github.com/use-agent/pagescrape/scraper"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP protocol.
	logging.Init(cfg.Log, os.Stderr)

	sc, err := scraper.NewScraper(cfg.Scraper)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		os.Exit(1)
	}

	s := mcpserver.New(sc, handler.Version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
