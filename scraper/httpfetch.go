package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/use-agent/pagescrape/models"
	"golang.org/x/net/html/charset"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// page is a fetched HTML body that passed every gate.
type page struct {
	html   string
	length int // in characters
}

// fetch performs the GET and applies the status, content-type and size gates
// in that order. The status and content-type are checked before the body is read.
func (s *Scraper) fetch(ctx context.Context, targetURL string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", acceptHTML)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.UpstreamStatus(resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, models.UnsupportedContentType(contentType)
	}

	// No charset known to take more than 4 bytes per character, so more
	// than 4*max raw bytes is always more than max characters and nothing
	// past that needs reading.
	maxBytes := int64(s.cfg.MaxHTMLLength)*utf8.UTFMax + 1
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("httpfetch: read body: %w", err)
	}
	if int64(len(data)) >= maxBytes {
		return nil, models.ResponseTooLarge(s.cfg.MaxHTMLLength)
	}

	text, err := decodeBody(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("httpfetch: decode body: %w", err)
	}

	length := utf8.RuneCountInString(text)
	if length > s.cfg.MaxHTMLLength {
		return nil, models.ResponseTooLarge(s.cfg.MaxHTMLLength)
	}

	return &page{html: text, length: length}, nil
}

// decodeBody returns data as UTF-8 text. It transcodes only when the
// encoding is certain (a byte-order mark or a charset in the Content-Type
// header); anything else is taken to be UTF-8 already, never guessed.
func decodeBody(data []byte, contentType string) (string, error) {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain || name == "utf-8" {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// isHTMLContentType returns true if the content-type header looks like HTML.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
