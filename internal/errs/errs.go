package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"
)

var (
	// ErrInvalidRequest is returned when a required query parameter is missing.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when an exact (project, page) lookup has no record.
	ErrNotFound = errors.New("config not found")

	// ErrStore covers every failure reported by the backing store.
	ErrStore = errors.New("store error")

	// ErrFetch is returned when the config endpoint cannot be read during a sync.
	ErrFetch = errors.New("fetch failed")

	// ErrParse is returned when the config endpoint returns malformed JSON.
	ErrParse = errors.New("parse failed")

	// ErrWrite is returned when an artifact cannot be written.
	ErrWrite = errors.New("write failed")
)

// StoreError wraps a failure from the store collaborator.
// Throttling, auth and malformed-query failures are not distinguished.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Code returns the AWS error code when the underlying error carries one.
func (e *StoreError) Code() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// FetchError reports a failed request to the config endpoint.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch config: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch config from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// WriteError reports a failed artifact write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// NewStoreError wraps err as a StoreError; nil stays nil.
func NewStoreError(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Table: table, Err: err}
}

// Invalid returns an ErrInvalidRequest carrying msg.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}

// Parse returns an ErrParse wrapping err.
func Parse(err error) error {
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// HTTPStatus maps an error from the lookup path to a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
