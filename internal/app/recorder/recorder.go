// Package recorder captures fixed-duration audio from the default
// input device via PortAudio.
package recorder

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"speech2text/internal/app/audio"
)

// Record blocks while capturing the given number of seconds from the
// default input device and returns the interleaved samples.
func Record(seconds, sampleRate, channels int) ([]int, error) {
	if seconds <= 0 {
		return nil, fmt.Errorf("recording duration must be positive, got %ds", seconds)
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid capture format: rate %d, channels %d", sampleRate, channels)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init failed: %v", err)
	}
	defer portaudio.Terminate()

	in := make([]int16, 1024)
	stream, err := portaudio.OpenDefaultStream(channels, 0, float64(sampleRate), len(in), in)
	if err != nil {
		return nil, fmt.Errorf("open default stream failed: %v", err)
	}
	defer func() {
		_ = stream.Stop()
		_ = stream.Close()
	}()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start stream failed: %v", err)
	}

	want := seconds * sampleRate * channels
	samples := make([]int, 0, want)
	for len(samples) < want {
		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("stream read failed: %v", err)
		}
		for _, s := range in {
			samples = append(samples, int(s))
		}
	}

	return samples[:want], nil
}

// RecordToWav captures a fixed duration and writes it as a 16-bit PCM
// WAV file.
func RecordToWav(path string, seconds, sampleRate, channels int) error {
	samples, err := Record(seconds, sampleRate, channels)
	if err != nil {
		return err
	}
	return audio.WriteWavFile(path, samples, sampleRate, channels)
}
