package testutil

import (
	"context"
	"sync"

	"speech2text/internal/app/api"
)

// RecognizeCall captures the arguments of one Recognize invocation.
type RecognizeCall struct {
	PCMLen     int
	SampleRate int
	Language   string
}

// ScriptedResult is what the MockRecognizer returns for one window.
type ScriptedResult struct {
	Text string
	Err  error
}

// MockRecognizer plays back scripted per-window results in call order.
// Once the script runs out it returns api.ErrNoSpeech, which the pipeline
// treats as silence.
type MockRecognizer struct {
	mu     sync.Mutex
	script []ScriptedResult
	calls  []RecognizeCall
}

var _ api.Recognizer = (*MockRecognizer)(nil)

func NewMockRecognizer(script ...ScriptedResult) *MockRecognizer {
	return &MockRecognizer{script: script}
}

func (m *MockRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRate int, language string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, RecognizeCall{
		PCMLen:     len(pcm),
		SampleRate: sampleRate,
		Language:   language,
	})

	if len(m.calls) > len(m.script) {
		return "", api.ErrNoSpeech
	}
	result := m.script[len(m.calls)-1]
	return result.Text, result.Err
}

// Calls returns a copy of every invocation seen so far.
func (m *MockRecognizer) Calls() []RecognizeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecognizeCall(nil), m.calls...)
}
