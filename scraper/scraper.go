package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/pagescrape/config"
	"github.com/use-agent/pagescrape/models"
	"golang.org/x/net/html"
)

// Scraper fetches a single page and extracts its metadata. It holds only
// immutable configuration and a shared client, so one value serves any
// number of concurrent calls.
type Scraper struct {
	cfg    config.ScraperConfig
	client *http.Client
}

// NewScraper creates a Scraper with a client built from cfg.
func NewScraper(cfg config.ScraperConfig) (*Scraper, error) {
	client, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewScraperWithClient(cfg, client), nil
}

// NewScraperWithClient creates a Scraper that issues requests through client.
// Zero-valued limits fall back to config.Defaults.
func NewScraperWithClient(cfg config.ScraperConfig, client *http.Client) *Scraper {
	defaults := config.Defaults()
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaults.FetchTimeout
	}
	if cfg.MaxHTMLLength <= 0 {
		cfg.MaxHTMLLength = defaults.MaxHTMLLength
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = defaults.PreviewLength
	}
	return &Scraper{cfg: cfg, client: client}
}

// Scrape runs the pipeline for rawURL: validate, fetch under the timeout,
// gate the response, parse, extract. Every error it returns is a
// *models.ScrapeError.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapeResult, error) {
	if rawURL == "" {
		return nil, models.MissingInput()
	}

	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, models.InvalidURL(err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	p, err := s.fetch(fetchCtx, target)
	if err != nil {
		return nil, s.classify(fetchCtx, target, err)
	}

	root, err := html.Parse(strings.NewReader(p.html))
	if err != nil {
		return nil, models.Unknown(fmt.Errorf("scraper: parse html: %w", err))
	}

	result := Extract(goquery.NewDocumentFromNode(root), p.length, s.cfg.PreviewLength)
	slog.Debug("page scraped",
		"url", target,
		"length", p.length,
		"headings", len(result.Headings),
	)
	return result, nil
}

// classify maps a fetch failure onto the taxonomy. An expired deadline wins
// over whatever error the transport surfaced for it.
func (s *Scraper) classify(ctx context.Context, target string, err error) *models.ScrapeError {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.Warn("fetch timed out", "url", target, "timeout", s.cfg.FetchTimeout)
		return models.Timeout(err)
	}
	return models.AsScrapeError(err)
}
