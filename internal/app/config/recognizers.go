package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	RecognizerGoogle  = "google"
	RecognizerWhisper = "whisper"
)

// RecognizersConfig selects and tunes the speech backends. The file is
// optional, a missing file yields the defaults.
type RecognizersConfig struct {
	DefaultRecognizer string       `yaml:"default_recognizer"`
	Google            GoogleConfig `yaml:"google,omitempty"`
}

// GoogleConfig overrides the web speech endpoint, mainly for tests and
// self-hosted gateways. API keys never live here, they come from the
// environment.
type GoogleConfig struct {
	Endpoint   string `yaml:"endpoint,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// LoadRecognizersConfig loads recognizer configuration from a YAML file.
func LoadRecognizersConfig(configPath string) (*RecognizersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	config := &RecognizersConfig{}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config.setDefaults()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *RecognizersConfig) setDefaults() {
	if c.DefaultRecognizer == "" {
		c.DefaultRecognizer = RecognizerGoogle
	}
	if c.Google.TimeoutSec == 0 {
		c.Google.TimeoutSec = 30
	}
}

func (c *RecognizersConfig) Validate() error {
	switch c.DefaultRecognizer {
	case RecognizerGoogle, RecognizerWhisper:
	default:
		return fmt.Errorf("unknown recognizer %q", c.DefaultRecognizer)
	}
	if c.Google.TimeoutSec < 0 {
		return fmt.Errorf("google timeout_sec must not be negative")
	}
	return nil
}
