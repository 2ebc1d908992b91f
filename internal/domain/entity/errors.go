package entity

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the text to summarize is blank.
var ErrEmptyInput = errors.New("input text is empty")

// ConfigurationError reports a backend that cannot be built from the given settings.
type ConfigurationError struct {
	Model  Model
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured: %s", e.Model, e.Reason)
}

// UnsupportedModelError reports an unknown model tag.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model: %q", e.Model)
}

// BackendError wraps any failure returned by an LLM backend.
type BackendError struct {
	Model Model
	Phase string
	Err   error
}

func (e *BackendError) Error() string {
	msg := "backend error"
	if e.Model != "" {
		msg = fmt.Sprintf("%s backend error", e.Model)
	}
	if e.Phase != "" {
		msg += " during " + e.Phase
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
