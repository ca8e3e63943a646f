package googlespeech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"speech2text/internal/app/api"
)

// DefaultEndpoint is the Chromium speech endpoint of the Google Web
// Speech API.
const DefaultEndpoint = "http://www.google.com/speech-api/v2/recognize"

// GoogleSpeechRecognizer implements recognition via the Google Web
// Speech API, posting each window as raw 16-bit PCM.
type GoogleSpeechRecognizer struct {
	config GoogleSpeechConfig
	client *http.Client
}

// GoogleSpeechConfig represents configuration for the Web Speech API
type GoogleSpeechConfig struct {
	Endpoint string        `yaml:"endpoint"` // Recognition endpoint, DefaultEndpoint when empty
	APIKey   string        `yaml:"api_key"`  // Chromium speech API key
	Timeout  time.Duration `yaml:"timeout"`  // Request timeout
}

// The endpoint answers with one JSON object per line; the first line is
// usually an empty result set.
type speechResponse struct {
	Result      []speechResult `json:"result"`
	ResultIndex int            `json:"result_index"`
}

type speechResult struct {
	Alternative []speechAlternative `json:"alternative"`
	Final       bool                `json:"final"`
}

type speechAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// NewGoogleSpeechRecognizer creates a new Web Speech API recognizer
func NewGoogleSpeechRecognizer(config GoogleSpeechConfig) *GoogleSpeechRecognizer {
	// Set defaults
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	return &GoogleSpeechRecognizer{
		config: config,
		client: client,
	}
}

// Recognize posts one window of PCM and extracts the first transcript
// alternative the service offers.
func (g *GoogleSpeechRecognizer) Recognize(ctx context.Context, pcm []byte, sampleRate int, language string) (string, error) {
	if len(pcm) == 0 {
		return "", api.ErrNoSpeech
	}
	if g.config.APIKey == "" {
		return "", &api.RecognitionError{
			Code:      "missing_api_key",
			Message:   "GOOGLE_SPEECH_API_KEY is not set",
			Provider:  "googlespeech",
			Retryable: false,
		}
	}

	requestURL := fmt.Sprintf("%s?client=chromium&lang=%s&key=%s&pFilter=0",
		g.config.Endpoint, url.QueryEscape(language), url.QueryEscape(g.config.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, "POST", requestURL, bytes.NewReader(pcm))
	if err != nil {
		return "", &api.RecognitionError{
			Code:      "request_creation_failed",
			Message:   fmt.Sprintf("failed to create HTTP request: %v", err),
			Provider:  "googlespeech",
			Retryable: false,
		}
	}
	httpReq.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", sampleRate))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &api.RecognitionError{
			Code:      "request_failed",
			Message:   fmt.Sprintf("HTTP request failed: %v", err),
			Provider:  "googlespeech",
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &api.RecognitionError{
			Code:      "response_read_failed",
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Provider:  "googlespeech",
			Retryable: true,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &api.RecognitionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("API returned status %d: %s", resp.StatusCode, string(responseData)),
			Provider:  "googlespeech",
			Retryable: resp.StatusCode >= 500,
		}
	}

	return parseTranscript(responseData)
}

// parseTranscript scans the line-delimited JSON body for the first
// result carrying alternatives. No such result means the service heard
// nothing in the window.
func parseTranscript(data []byte) (string, error) {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var resp speechResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return "", &api.RecognitionError{
				Code:      "response_parse_failed",
				Message:   fmt.Sprintf("failed to parse response line: %v", err),
				Provider:  "googlespeech",
				Retryable: false,
			}
		}

		for _, result := range resp.Result {
			if len(result.Alternative) == 0 {
				continue
			}
			transcript := result.Alternative[0].Transcript
			if transcript == "" {
				return "", api.ErrNoSpeech
			}
			return transcript, nil
		}
	}

	return "", api.ErrNoSpeech
}
