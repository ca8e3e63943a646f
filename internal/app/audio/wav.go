package audio

import (
	"encoding/binary"
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"speech2text/internal/app/model"
)

// Clip holds decoded PCM samples together with their format. Samples
// are interleaved when the clip has more than one channel.
type Clip struct {
	Samples    []int
	SampleRate int
	Channels   int
}

// DurationMS returns the clip length in whole milliseconds.
func (c *Clip) DurationMS() int {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	frames := len(c.Samples) / c.Channels
	return frames * 1000 / c.SampleRate
}

// SliceWindow returns the samples covering [w.StartMS, w.EndMS) of the
// clip, clamped to the clip length.
func (c *Clip) SliceWindow(w model.Window) []int {
	start := w.StartMS * c.SampleRate / 1000 * c.Channels
	end := w.EndMS * c.SampleRate / 1000 * c.Channels
	if end > len(c.Samples) {
		end = len(c.Samples)
	}
	if start > end {
		start = end
	}
	return c.Samples[start:end]
}

// ReadWavFile decodes a PCM WAV file into memory.
func ReadWavFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode WAV '%s': %v", path, err)
	}

	return &Clip{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// WriteWavFile writes interleaved samples as a 16-bit PCM WAV file.
func WriteWavFile(path string, samples []int, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("encode WAV '%s': %v", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PCMBytes renders samples as 16-bit little-endian PCM, the raw wire
// form recognizers consume.
func PCMBytes(samples []int) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(s)))
	}
	return out
}

// SamplesFromPCM decodes 16-bit little-endian PCM back into samples.
// A trailing odd byte is dropped.
func SamplesFromPCM(pcm []byte) []int {
	out := make([]int, len(pcm)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}
	return out
}
