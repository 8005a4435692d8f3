package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrAPIKeyRequired = errors.New("API key required")
	ErrModelAPIError  = errors.New("model API error")
	ErrRateLimit      = errors.New("model rate limit exceeded")
	ErrTimeout        = errors.New("model request timeout")
	ErrEmptyResponse  = errors.New("empty model response")
)

// ModelError describes a failed call against one model.
type ModelError struct {
	Model string
	Op    string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %s: %v", e.Model, e.Op, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

func NewModelError(model, op string, err error) *ModelError {
	return &ModelError{
		Model: model,
		Op:    op,
		Err:   err,
	}
}

// IsRetryable reports whether the call may succeed when issued again.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, ErrRateLimit):
		return true
	case errors.Is(err, ErrModelAPIError):
		return true
	case errors.Is(err, ErrTimeout):
		return true
	default:
		return false
	}
}
