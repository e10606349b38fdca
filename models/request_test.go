package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScrapeRequest(t *testing.T) {
	tests := []struct {
		body string
		want ErrorKind // empty for success
	}{
		{``, ErrMissingInput},
		{`  `, ErrMissingInput},
		{`{}`, ErrMissingInput},
		{`{"url":""}`, ErrMissingInput},
		{`{"url":null}`, ErrMissingInput},
		{`{"url":0}`, ErrMissingInput},
		{`{"url":false}`, ErrMissingInput},
		{`[1,2]`, ErrMissingInput},
		{`"https://example.com"`, ErrMissingInput},
		{`5`, ErrMissingInput},
		{`{"url":42}`, ErrInvalidURL},
		{`{"url":true}`, ErrInvalidURL},
		{`{"url":{}}`, ErrInvalidURL},
		{`{"url":["https://example.com"]}`, ErrInvalidURL},
		{`null`, ErrUnknown},
		{`{"url":`, ErrUnknown},
		{`not json`, ErrUnknown},
		{`{"url":"https://example.com"}`, ""},
		{`{"url":"  "}`, ""},
	}

	for _, tt := range tests {
		req, err := DecodeScrapeRequest([]byte(tt.body))
		if tt.want == "" {
			require.NoError(t, err, "body %q", tt.body)
			assert.NotEmpty(t, req.URL)
			continue
		}
		require.Error(t, err, "body %q", tt.body)
		assert.Equal(t, tt.want, AsScrapeError(err).Kind, "body %q", tt.body)
	}
}
