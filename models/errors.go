package models

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed scrape. Every kind maps to exactly one HTTP status.
type ErrorKind string

const (
	ErrMissingInput           ErrorKind = "MISSING_INPUT"
	ErrInvalidURL             ErrorKind = "INVALID_URL"
	ErrUpstreamStatus         ErrorKind = "UPSTREAM_STATUS"
	ErrUnsupportedContentType ErrorKind = "UNSUPPORTED_CONTENT_TYPE"
	ErrResponseTooLarge       ErrorKind = "RESPONSE_TOO_LARGE"
	ErrTimeout                ErrorKind = "TIMEOUT"
	ErrUnknown                ErrorKind = "UNKNOWN"
)

// User-facing messages. The handler surfaces them verbatim.
const (
	MsgMissingInput           = "URL is required."
	MsgInvalidURL             = "Enter a valid http(s) URL."
	MsgUnsupportedContentType = "The target URL must respond with HTML content."
	MsgTimeout                = "Request timed out. Try again."
	MsgUnknown                = "Unable to scrape the requested page."
)

// ScrapeError is the internal error type carrying a kind, the HTTP status
// returned to the caller and a human-readable message.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error // wrapped cause
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(kind ErrorKind, status int, message string, err error) *ScrapeError {
	return &ScrapeError{Kind: kind, Status: status, Message: message, Err: err}
}

func MissingInput() *ScrapeError {
	return NewScrapeError(ErrMissingInput, http.StatusBadRequest, MsgMissingInput, nil)
}

func InvalidURL(err error) *ScrapeError {
	return NewScrapeError(ErrInvalidURL, http.StatusBadRequest, MsgInvalidURL, err)
}

// UpstreamStatus reports a non-2xx answer from the target server.
func UpstreamStatus(code int) *ScrapeError {
	return NewScrapeError(ErrUpstreamStatus, http.StatusBadGateway,
		fmt.Sprintf("Failed to load page (status %d).", code), nil)
}

func UnsupportedContentType(contentType string) *ScrapeError {
	return NewScrapeError(ErrUnsupportedContentType, http.StatusBadRequest, MsgUnsupportedContentType,
		fmt.Errorf("content-type %q", contentType))
}

// ResponseTooLarge names the limit in kB, rounded to the nearest integer.
func ResponseTooLarge(limit int) *ScrapeError {
	kb := (limit + 500) / 1000
	return NewScrapeError(ErrResponseTooLarge, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Response is too large to preview (>%dkB).", kb), nil)
}

func Timeout(err error) *ScrapeError {
	return NewScrapeError(ErrTimeout, http.StatusInternalServerError, MsgTimeout, err)
}

func Unknown(err error) *ScrapeError {
	return NewScrapeError(ErrUnknown, http.StatusInternalServerError, MsgUnknown, err)
}

// AsScrapeError maps any error onto the taxonomy. A ScrapeError already in the
// chain wins; a deadline anywhere in the chain is a timeout; the rest is unknown.
func AsScrapeError(err error) *ScrapeError {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	return Unknown(err)
}
