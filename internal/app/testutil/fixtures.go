package testutil

import (
	"testing"

	"speech2text/internal/app/audio"
)

// WriteTestWav writes a mono 16 kHz WAV of the given length. The samples
// ramp so different windows carry different data.
func WriteTestWav(t *testing.T, path string, durationMS int) {
	t.Helper()

	samples := make([]int, 16000*durationMS/1000)
	for i := range samples {
		samples[i] = i % 2048
	}
	if err := audio.WriteWavFile(path, samples, 16000, 1); err != nil {
		t.Fatalf("failed to write test wav %s: %v", path, err)
	}
}

// WriteTestWavWithFormat is WriteTestWav with an explicit format, for
// exercising the conformance paths.
func WriteTestWavWithFormat(t *testing.T, path string, durationMS, sampleRate, channels int) {
	t.Helper()

	samples := make([]int, sampleRate*durationMS/1000*channels)
	for i := range samples {
		samples[i] = i % 2048
	}
	if err := audio.WriteWavFile(path, samples, sampleRate, channels); err != nil {
		t.Fatalf("failed to write test wav %s: %v", path, err)
	}
}
