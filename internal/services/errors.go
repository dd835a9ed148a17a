package services

import (
	"errors"
	"fmt"
)

var (
	// ErrExtractionParse is returned when the LLM response to the
	// requirements-extraction prompt is not the expected JSON shape.
	ErrExtractionParse = errors.New("extraction response is not valid JSON")

	// ErrRankingParse is returned when the LLM response to the ranking prompt
	// is not the expected JSON shape.
	ErrRankingParse = errors.New("ranking response is not valid JSON")

	// ErrDimensionMismatch is returned when a vector's dimension does not
	// match the index. Mixing embedding backends across index and query is a
	// configuration error and must fail fast rather than corrupt scores.
	ErrDimensionMismatch = errors.New("vector dimension does not match index")
)

// ExternalServiceError wraps a failure from the LLM, embedding, or vector
// backend. The orchestrator demotes it to an empty stage result.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports missing credentials or an unknown backend for a
// component the caller explicitly requested.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Option, e.Reason)
}
