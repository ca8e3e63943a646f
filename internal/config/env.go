package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	apperrors "speech2text/internal/app/errors"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	GoogleSpeech string
	OpenAI       string
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Printf("✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		GoogleSpeech: strings.TrimSpace(os.Getenv("GOOGLE_SPEECH_API_KEY")),
		OpenAI:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}

	// Validate API keys format (basic checks)
	if apiKeys.OpenAI != "" {
		if !strings.HasPrefix(apiKeys.OpenAI, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(apiKeys.OpenAI) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if apiKeys.GoogleSpeech != "" {
		if !strings.HasPrefix(apiKeys.GoogleSpeech, "AIza") {
			return nil, fmt.Errorf("invalid GOOGLE_SPEECH_API_KEY format: must start with 'AIza'")
		}
		if len(apiKeys.GoogleSpeech) < 30 {
			return nil, fmt.Errorf("invalid GOOGLE_SPEECH_API_KEY format: too short")
		}
	}

	return apiKeys, nil
}

// ValidateAPIKeys reports which keys are available without failing
func ValidateAPIKeys(apiKeys *APIKeys) error {
	var availableKeys []string
	if apiKeys.GoogleSpeech != "" {
		availableKeys = append(availableKeys, "Google Speech")
	}
	if apiKeys.OpenAI != "" {
		availableKeys = append(availableKeys, "OpenAI")
	}

	if len(availableKeys) > 0 {
		fmt.Printf("✅ API keys available: %s\n", strings.Join(availableKeys, ", "))
	} else {
		fmt.Printf("ℹ️  No API keys configured (transcription will be unavailable)\n")
	}

	return nil
}

// RequireAPIKeys validates that at least one API key is available
func RequireAPIKeys(apiKeys *APIKeys) error {
	if apiKeys.GoogleSpeech == "" && apiKeys.OpenAI == "" {
		return fmt.Errorf("%w - please set GOOGLE_SPEECH_API_KEY or OPENAI_API_KEY in environment or .env file", apperrors.ErrMissingAPIKey)
	}
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads environment and validates configuration
func InitializeConfig() (*APIKeys, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	// Show available keys without failing
	ValidateAPIKeys(apiKeys)

	return apiKeys, nil
}
