package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "speech2text/internal/app/errors"
)

const (
	DefaultLanguage      = "en-IN"
	DefaultChunkMS       = 30000
	DefaultOverlapMS     = 1000
	DefaultSampleRate    = 16000
	DefaultChannels      = 1
	DefaultRecordSeconds = 10
)

var validate = validator.New()

// PipelineConfig carries the knobs for one transcription run.
type PipelineConfig struct {
	Language     string `yaml:"language" validate:"required,bcp47_language_tag"`
	ChunkMS      int    `yaml:"chunk_ms" validate:"gt=0"`
	OverlapMS    int    `yaml:"overlap_ms" validate:"gte=0"`
	SampleRate   int    `yaml:"sample_rate" validate:"gt=0"`
	Channels     int    `yaml:"channels" validate:"gt=0"`
	ShowProgress bool   `yaml:"show_progress"`
}

func NewDefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Language:   DefaultLanguage,
		ChunkMS:    DefaultChunkMS,
		OverlapMS:  DefaultOverlapMS,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
	}
}

// Validate rejects configurations the windowing step cannot honor. The
// overlap must leave the cursor moving forward, so it has to stay strictly
// below the chunk size.
func (c *PipelineConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	if c.OverlapMS >= c.ChunkMS {
		return fmt.Errorf("%w: overlap %dms must be smaller than chunk %dms",
			apperrors.ErrInvalidConfig, c.OverlapMS, c.ChunkMS)
	}
	return nil
}
