package app

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL     = errors.New("invalid YouTube URL")
	ErrNotFound       = errors.New("video not found")
	ErrUpstream       = errors.New("upstream failure")
	ErrDownloadFailed = errors.New("download failed")
	ErrUploadFailed   = errors.New("upload failed")
	ErrInternal       = errors.New("internal failure")

	// The extraction tool reported success without leaving a file behind.
	ErrArtifactNotFound = fmt.Errorf("%w: downloaded file not found", ErrDownloadFailed)
)

// The error replied to the client with the given HTTP status code.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

// A failure of the given kind, keeping its cause apart for the client message.
type kindError struct {
	kind  error
	cause error
}

func wrap(kind, cause error) error {
	return &kindError{kind, cause}
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// Get the message of the cause behind the failure.
func cause(err error) string {
	var e *kindError
	if errors.As(err, &e) {
		return e.cause.Error()
	}
	return err.Error()
}
