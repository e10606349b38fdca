package models

// Meta holds the page-level fields. Every value is whitespace-collapsed and
// empty when the page does not declare it.
type Meta struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Robots        string `json:"robots"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
}

// ScrapeResult is what a successful scrape produces.
type ScrapeResult struct {
	Meta Meta `json:"meta"`

	// Headings lists h1, h2 and h3 texts in document order, empty ones dropped.
	Headings []string `json:"headings"`

	// HTMLPreview is the collapsed document text, truncated.
	HTMLPreview string `json:"htmlPreview"`
}

// ScrapeResponse is the response for POST /api/scrape.
//
// Exactly one of ScrapeResult and Error is set: a nil embedded result is
// omitted from the JSON entirely, so failures serialise as {ok:false, error}.
type ScrapeResponse struct {
	OK bool `json:"ok"`
	*ScrapeResult
	Error string `json:"error,omitempty"`
}

// Success wraps a result.
func Success(result *ScrapeResult) ScrapeResponse {
	return ScrapeResponse{OK: true, ScrapeResult: result}
}

// Failure wraps an error message.
func Failure(e *ScrapeError) ScrapeResponse {
	return ScrapeResponse{OK: false, Error: e.Message}
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
