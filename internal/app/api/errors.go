package api

import "errors"

// ErrNoSpeech reports that a window contained nothing intelligible.
// Callers treat it as an empty result and move on without logging.
var ErrNoSpeech = errors.New("no speech detected")

// RecognitionError represents provider-specific service failures:
// network trouble, quota exhaustion, or a malformed response. Retryable
// classifies the failure; nothing in this codebase retries.
type RecognitionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
}

func (e *RecognitionError) Error() string {
	return e.Message
}
