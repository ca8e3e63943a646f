package model

import "time"

type Transcription struct {
	ID                 int
	User               string
	LastConversionTime time.Time
	WavFileName        string
	AudioDuration      int
	Transcription      string
	ErrorMessage       string
}
