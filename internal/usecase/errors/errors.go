package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Upload errors
var (
	ErrMissingAudio       = errors.New("audio file is required")
	ErrUnsupportedAudio   = errors.New("unsupported audio type")
	ErrAudioTooLarge      = errors.New("audio file exceeds the upload limit")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidParticipant = errors.New("participants must be a list of names")
	ErrUploadInProgress   = errors.New("an upload with this idempotency key is still being processed")
)

// Meeting errors
var (
	ErrQueryTooShort         = errors.New("search query must be at least 3 characters")
	ErrMeetingNotTranscribed = errors.New("meeting has no transcription yet")
)

// AI errors
var (
	ErrLLMUnavailable = errors.New("language model is not configured")
)

// ValidationError reports a rejected input field before any state changed
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid wraps err as a validation failure on field
func Invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
