package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the provider answered successfully but the
// first candidate carried no text part.
var ErrEmptyResponse = errors.New("no response generated from AI")

// ConfigError reports missing or invalid provider configuration. It is never retried.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProviderError is a non-success answer from the provider.
// Body is kept for debugging and is deliberately left out of Error().
type ProviderError struct {
	Model      string
	StatusCode int
	Body       string
	// Transient is true for rate-limit, model-not-found and transport failures.
	Transient bool
	Cause     error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("AI API request failed (model %s): %v", e.Model, e.Cause)
		}
		return fmt.Sprintf("AI API request failed (model %s)", e.Model)
	}
	return fmt.Sprintf("AI API error: %d", e.StatusCode)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// IsTransient reports whether err is a provider failure eligible for a fallback attempt.
func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient
}
