package api

import "context"

// Recognizer defines a recognition interface for converting one window of
// raw audio into text. pcm carries 16-bit little-endian samples at the
// given rate.
//
// Implementations return ErrNoSpeech when the service heard nothing
// intelligible in the window and *RecognitionError when the service
// itself failed. Both are recoverable for the caller.
type Recognizer interface {
	Recognize(ctx context.Context, pcm []byte, sampleRate int, language string) (string, error)
}
