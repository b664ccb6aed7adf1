package services

import (
	"errors"
	"fmt"
)

// ErrNoCVs is returned when an evaluation is requested without any CVs.
var ErrNoCVs = errors.New("no CVs uploaded for this user")

// ValidationError reports input the caller can correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a failed, timed out or empty LLM call.
type UpstreamError struct {
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("llm request failed: %v", e.Err)
	}
	return fmt.Sprintf("llm request failed: %s", e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a file that could not be read as a PDF.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract PDF text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
