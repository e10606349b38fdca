package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pagescrape/models"
	"github.com/use-agent/pagescrape/scraper"
)

// Scrape returns a handler for POST /api/scrape.
//
// Orchestration flow:
//  1. Decode {"url": ...} with models.DecodeScrapeRequest.
//  2. Scraper.Scrape → metadata, headings, preview.
//  3. Respond 200 {ok:true, ...} or the error's status with {ok:false, error}.
func Scrape(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		body, err := c.GetRawData()
		if err != nil {
			respondError(c, "", models.Unknown(fmt.Errorf("read request: %w", err)), start)
			return
		}

		req, err := models.DecodeScrapeRequest(body)
		if err != nil {
			respondError(c, "", err, start)
			return
		}

		result, err := sc.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, req.URL, err, start)
			return
		}

		c.JSON(http.StatusOK, models.Success(result))
	}
}

// respondError maps err onto a ScrapeError and writes {ok:false, error}
// with the matching HTTP status.
func respondError(c *gin.Context, url string, err error, start time.Time) {
	scrapeErr := models.AsScrapeError(err)

	slog.Warn("scrape failed",
		"kind", scrapeErr.Kind,
		"status", scrapeErr.Status,
		"url", url,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err,
	)

	c.JSON(scrapeErr.Status, models.Failure(scrapeErr))
}
