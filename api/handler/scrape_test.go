package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/pagescrape/api/handler"
	"github.com/use-agent/pagescrape/config"
	"github.com/use-agent/pagescrape/models"
	"github.com/use-agent/pagescrape/scraper"
)

const samplePage = `<html><head><title>  Hi   There </title><meta name="description" content="d"></head>` +
	`<body><h1>A</h1><h2></h2><h1>B</h1></body></html>`

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sc, err := scraper.NewScraper(config.Defaults())
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/scrape", handler.Scrape(sc))
	return r
}

func post(t *testing.T, r http.Handler, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload), "body: %s", w.Body.String())
	return w.Code, payload
}

func upstream(t *testing.T, contentType string, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func urlBody(u string) string {
	b, _ := json.Marshal(models.ScrapeRequest{URL: u})
	return string(b)
}

func assertFailure(t *testing.T, payload map[string]any) string {
	t.Helper()
	assert.Equal(t, false, payload["ok"])
	assert.NotContains(t, payload, "meta")
	assert.NotContains(t, payload, "headings")
	msg, ok := payload["error"].(string)
	require.True(t, ok, "error must be a string: %v", payload)
	return msg
}

func TestScrape_MissingURL(t *testing.T) {
	r := newEngine(t)

	for _, body := range []string{``, `{}`, `{"url":""}`, `{"url":null}`, `{"url":0}`, `{"url":false}`, `[1,2]`, `"x"`} {
		code, payload := post(t, r, body)
		assert.Equal(t, http.StatusBadRequest, code, "body %q", body)
		assert.Equal(t, models.MsgMissingInput, assertFailure(t, payload), "body %q", body)
	}
}

func TestScrape_InvalidURL(t *testing.T) {
	r := newEngine(t)

	for _, u := range []string{"ftp://x", "not a url", "   ", "http://example.com:99999"} {
		code, payload := post(t, r, urlBody(u))
		assert.Equal(t, http.StatusBadRequest, code, "url %q", u)
		assert.Equal(t, models.MsgInvalidURL, assertFailure(t, payload))
	}
}

func TestScrape_NonStringURL(t *testing.T) {
	r := newEngine(t)

	for _, body := range []string{`{"url":42}`, `{"url":true}`, `{"url":{"href":"https://example.com"}}`} {
		code, payload := post(t, r, body)
		assert.Equal(t, http.StatusBadRequest, code, "body %q", body)
		assert.Equal(t, models.MsgInvalidURL, assertFailure(t, payload), "body %q", body)
	}
}

func TestScrape_UnparseableBody(t *testing.T) {
	r := newEngine(t)

	for _, body := range []string{`{"url":`, `not json`, `null`} {
		code, payload := post(t, r, body)
		assert.Equal(t, http.StatusInternalServerError, code, "body %q", body)
		assert.Equal(t, models.MsgUnknown, assertFailure(t, payload), "body %q", body)
	}
}

func TestScrape_Success(t *testing.T) {
	r := newEngine(t)
	target := upstream(t, "text/html; charset=utf-8", http.StatusOK, samplePage)

	code, payload := post(t, r, urlBody(target))
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, true, payload["ok"])
	assert.NotContains(t, payload, "error")
	assert.Equal(t, map[string]any{
		"title":         "Hi There",
		"description":   "d",
		"robots":        "",
		"ogTitle":       "",
		"ogDescription": "",
	}, payload["meta"])
	assert.Equal(t, []any{"A", "B"}, payload["headings"])
	assert.Equal(t, "Hi There AB", payload["htmlPreview"])
}

func TestScrape_EmptyHeadingsSerialiseAsArray(t *testing.T) {
	r := newEngine(t)
	target := upstream(t, "text/html", http.StatusOK, "<title>t</title><p>body</p>")

	code, payload := post(t, r, urlBody(target))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, payload["headings"])
}

func TestScrape_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		status      int
		body        string
		wantCode    int
		wantMessage string
	}{
		{"not found", "text/html", http.StatusNotFound, "gone", http.StatusBadGateway, "404"},
		{"server error", "text/html", http.StatusServiceUnavailable, "", http.StatusBadGateway, "503"},
		{"json", "application/json", http.StatusOK, `{}`, http.StatusBadRequest, models.MsgUnsupportedContentType},
		{"too large", "text/html", http.StatusOK, strings.Repeat("x", 20000), http.StatusRequestEntityTooLarge, "15"},
	}

	r := newEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := upstream(t, tt.contentType, tt.status, tt.body)

			code, payload := post(t, r, urlBody(target))
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, assertFailure(t, payload), tt.wantMessage)
		})
	}
}
