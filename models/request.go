package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScrapeRequest is the payload for POST /api/scrape.
type ScrapeRequest struct {
	// URL is the target page. Required; validated by the scraper, not by binding,
	// so that a missing value gets the dedicated message.
	URL string `json:"url"`
}

// DecodeScrapeRequest reads {"url": ...} leniently:
//
//   - an empty body, a JSON value that is not an object, or a url that is
//     absent, null, false, 0 or "" is a missing URL;
//   - a url of any other non-string type is an invalid URL;
//   - a JSON null body or unparseable JSON is an unknown failure.
func DecodeScrapeRequest(body []byte) (ScrapeRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return ScrapeRequest{}, MissingInput()
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return ScrapeRequest{}, Unknown(fmt.Errorf("decode request: %w", err))
	}
	if v == nil {
		return ScrapeRequest{}, Unknown(fmt.Errorf("decode request: null body"))
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return ScrapeRequest{}, MissingInput()
	}

	switch u := obj["url"].(type) {
	case nil:
		return ScrapeRequest{}, MissingInput()
	case string:
		if u == "" {
			return ScrapeRequest{}, MissingInput()
		}
		return ScrapeRequest{URL: u}, nil
	case bool:
		if !u {
			return ScrapeRequest{}, MissingInput()
		}
	case float64:
		if u == 0 {
			return ScrapeRequest{}, MissingInput()
		}
	}
	return ScrapeRequest{}, InvalidURL(fmt.Errorf("url is %T, not a string", obj["url"]))
}
