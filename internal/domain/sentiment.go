package domain

import (
	"errors"
	"fmt"
)

// ConfidenceScores carries the provider's per-label confidence for one text.
type ConfidenceScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentResult is the analysis outcome for a single input text.
type SentimentResult struct {
	Text       string           `json:"text"`
	Sentiment  string           `json:"sentiment"`
	Confidence ConfidenceScores `json:"confidence"`
}

// Failure modes of the sentiment provider, translated by the gateway so
// callers never see raw transport errors.
var (
	// ErrProviderTimeout means the outbound call did not complete in time.
	ErrProviderTimeout = errors.New("sentiment provider timed out")
	// ErrProviderAuth means the provider rejected our credentials.
	ErrProviderAuth = errors.New("sentiment provider rejected credentials")
	// ErrProviderUnavailable means the provider reported transient unavailability.
	ErrProviderUnavailable = errors.New("sentiment provider unavailable")
	// ErrProviderConnection covers lower-level transport failures.
	ErrProviderConnection = errors.New("sentiment provider unreachable")
)

// ProviderRateLimitError means the provider itself throttled us. RetryAfterSeconds
// is the provider's hint, 0 when it gave none.
type ProviderRateLimitError struct {
	RetryAfterSeconds int
}

func (e *ProviderRateLimitError) Error() string {
	return fmt.Sprintf("sentiment provider rate limited (retry after %ds)", e.RetryAfterSeconds)
}

// ProviderError covers any other non-success provider response, keeping the
// raw status and a body snippet for diagnostics.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("sentiment provider returned status %d: %s", e.StatusCode, e.Detail)
}
