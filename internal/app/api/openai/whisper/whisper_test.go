package whisper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"speech2text/internal/app/api"
	"speech2text/internal/app/audio"
)

func oneSecondOfSilence() []byte {
	return audio.PCMBytes(make([]int, 16000))
}

// TestRemoteRecognizer_Recognize tests the RemoteRecognizer implementation
func TestRemoteRecognizer_Recognize(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  string
		mockStatus    int
		expectedText  string
		expectError   bool
		noSpeech      bool
		wantRetryable bool
	}{
		{
			name:         "successful recognition",
			mockResponse: `{"text": "This is a test transcription"}`,
			mockStatus:   http.StatusOK,
			expectedText: "This is a test transcription",
		},
		{
			name:         "successful recognition with special characters",
			mockResponse: `{"text": "Hello, 世界! This is a test with émojis 🎵"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Hello, 世界! This is a test with émojis 🎵",
		},
		{
			name:         "empty transcription means no speech",
			mockResponse: `{"text": ""}`,
			mockStatus:   http.StatusOK,
			noSpeech:     true,
		},
		{
			name:          "API error - unauthorized",
			mockResponse:  `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusUnauthorized,
			expectError:   true,
			wantRetryable: false,
		},
		{
			name:          "API error - server error",
			mockResponse:  `{"error": {"message": "Internal server error", "type": "server_error"}}`,
			mockStatus:    http.StatusInternalServerError,
			expectError:   true,
			wantRetryable: true,
		},
		{
			name:          "network error",
			mockStatus:    0, // handler hijacks and closes the connection
			expectError:   true,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.mockStatus == 0 {
					hijacker, ok := w.(http.Hijacker)
					if ok {
						conn, _, _ := hijacker.Hijack()
						conn.Close()
						return
					}
				}

				if r.Method != http.MethodPost {
					t.Errorf("Expected POST method, got %s", r.Method)
				}

				contentType := r.Header.Get("Content-Type")
				if !strings.Contains(contentType, "multipart/form-data") {
					t.Errorf("Expected multipart/form-data content type, got %s", contentType)
				}

				if err := r.ParseMultipartForm(32 << 20); err != nil {
					t.Errorf("Failed to parse multipart form: %v", err)
				}

				if model := r.FormValue("model"); model != "whisper-1" {
					t.Errorf("Expected model whisper-1, got %s", model)
				}

				// BCP-47 tags must arrive trimmed to the primary subtag
				if language := r.FormValue("language"); language != "en" {
					t.Errorf("Expected language en, got %s", language)
				}

				file, _, err := r.FormFile("file")
				if err != nil {
					t.Errorf("Failed to get file from form: %v", err)
				} else {
					file.Close()
				}

				if tt.mockStatus > 0 {
					w.WriteHeader(tt.mockStatus)
				}
				if tt.mockResponse != "" {
					w.Write([]byte(tt.mockResponse))
				}
			}))
			defer server.Close()

			config := openai.DefaultConfig("test-api-key")
			config.BaseURL = server.URL + "/v1"
			client := openai.NewClientWithConfig(config)

			rr := NewRemoteRecognizer(client)
			result, err := rr.Recognize(context.Background(), oneSecondOfSilence(), 16000, "en-IN")

			if tt.noSpeech {
				if !errors.Is(err, api.ErrNoSpeech) {
					t.Errorf("Expected ErrNoSpeech, got %v", err)
				}
				return
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				var recErr *api.RecognitionError
				if !errors.As(err, &recErr) {
					t.Fatalf("Expected *api.RecognitionError, got %T: %v", err, err)
				}
				if recErr.Provider != "whisper" {
					t.Errorf("Expected provider whisper, got %s", recErr.Provider)
				}
				if recErr.Retryable != tt.wantRetryable {
					t.Errorf("Expected retryable=%v, got %v", tt.wantRetryable, recErr.Retryable)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result != tt.expectedText {
				t.Errorf("Expected text '%s', got '%s'", tt.expectedText, result)
			}
		})
	}
}

// TestRemoteRecognizer_EmptyWindow tests that an empty window short-circuits
func TestRemoteRecognizer_EmptyWindow(t *testing.T) {
	config := openai.DefaultConfig("test-api-key")
	client := openai.NewClientWithConfig(config)
	rr := NewRemoteRecognizer(client)

	_, err := rr.Recognize(context.Background(), nil, 16000, "en-IN")
	if !errors.Is(err, api.ErrNoSpeech) {
		t.Errorf("Expected ErrNoSpeech for empty window, got %v", err)
	}
}

// TestRemoteRecognizer_Timeout tests request timeout handling
func TestRemoteRecognizer_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"text": "Should time out"}`))
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-api-key")
	config.BaseURL = server.URL + "/v1"
	config.HTTPClient = &http.Client{
		Timeout: 100 * time.Millisecond,
	}
	client := openai.NewClientWithConfig(config)
	rr := NewRemoteRecognizer(client)

	_, err := rr.Recognize(context.Background(), oneSecondOfSilence(), 16000, "en")
	if err == nil {
		t.Fatal("Expected timeout error, got none")
	}
	var recErr *api.RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("Expected *api.RecognitionError, got %T: %v", err, err)
	}
	if !recErr.Retryable {
		t.Error("Expected timeout to classify as retryable")
	}
}

func TestPrimarySubtag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "en-IN", want: "en"},
		{in: "en", want: "en"},
		{in: "pt-BR", want: "pt"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := primarySubtag(tt.in); got != tt.want {
			t.Errorf("primarySubtag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
