package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"speech2text/internal/app/api"
	"speech2text/internal/app/audio"
)

// RemoteRecognizer implements window recognition using the OpenAI API.
type RemoteRecognizer struct {
	client *openai.Client
}

// NewRemoteRecognizer creates a new RemoteRecognizer instance.
func NewRemoteRecognizer(client *openai.Client) *RemoteRecognizer {
	return &RemoteRecognizer{client: client}
}

// Recognize wraps the window into a temporary WAV file and runs it
// through the hosted whisper-1 model.
func (rr *RemoteRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRate int, language string) (string, error) {
	if len(pcm) == 0 {
		return "", api.ErrNoSpeech
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("s2t_window_%s.wav", uuid.NewString()))
	if err := audio.WriteWavFile(tempPath, audio.SamplesFromPCM(pcm), sampleRate, 1); err != nil {
		return "", fmt.Errorf("write window wav: %v", err)
	}
	defer os.Remove(tempPath)

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: tempPath,
		// whisper takes the bare ISO 639-1 code, not a BCP-47 tag
		Language: primarySubtag(language),
	}
	resp, err := rr.client.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &api.RecognitionError{
				Code:      "api_error",
				Message:   fmt.Sprintf("createTranscription failed: %s", err),
				Provider:  "whisper",
				Retryable: apiErr.HTTPStatusCode >= 500,
			}
		}
		return "", &api.RecognitionError{
			Code:      "request_failed",
			Message:   fmt.Sprintf("createTranscription failed: %s", err),
			Provider:  "whisper",
			Retryable: true,
		}
	}

	if resp.Text == "" {
		return "", api.ErrNoSpeech
	}

	return resp.Text, nil
}

func primarySubtag(language string) string {
	if i := strings.Index(language, "-"); i > 0 {
		return language[:i]
	}
	return language
}
