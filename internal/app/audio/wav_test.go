package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

func TestWavRoundTrip(t *testing.T) {
	samples := make([]int, 16000) // one second of mono audio
	for i := range samples {
		samples[i] = i % 2048
	}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	require.NoError(t, WriteWavFile(path, samples, 16000, 1))

	clip, err := ReadWavFile(path)
	require.NoError(t, err)

	assert.Equal(t, 16000, clip.SampleRate)
	assert.Equal(t, 1, clip.Channels)
	assert.Equal(t, samples, clip.Samples)
	assert.Equal(t, 1000, clip.DurationMS())
}

func TestReadWavFileRejectsNonWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no RIFF header"), 0644))

	_, err := ReadWavFile(path)
	assert.Error(t, err)
}

func TestReadWavFileMissing(t *testing.T) {
	_, err := ReadWavFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestSliceWindow(t *testing.T) {
	clip := &Clip{
		Samples:    make([]int, 16000*3), // three seconds
		SampleRate: 16000,
		Channels:   1,
	}
	for i := range clip.Samples {
		clip.Samples[i] = i
	}

	tests := []struct {
		name      string
		window    model.Window
		wantLen   int
		wantFirst int
	}{
		{
			name:      "first second",
			window:    model.Window{StartMS: 0, EndMS: 1000},
			wantLen:   16000,
			wantFirst: 0,
		},
		{
			name:      "middle second",
			window:    model.Window{StartMS: 1000, EndMS: 2000},
			wantLen:   16000,
			wantFirst: 16000,
		},
		{
			name:      "end clamped to clip length",
			window:    model.Window{StartMS: 2500, EndMS: 4000},
			wantLen:   8000,
			wantFirst: 40000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clip.SliceWindow(tt.window)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0])
		})
	}
}

func TestSliceWindowFullyPastEndIsEmpty(t *testing.T) {
	clip := &Clip{Samples: make([]int, 160), SampleRate: 16000, Channels: 1}
	got := clip.SliceWindow(model.Window{StartMS: 5000, EndMS: 6000})
	assert.Empty(t, got)
}

func TestDurationMSStereo(t *testing.T) {
	clip := &Clip{Samples: make([]int, 88200), SampleRate: 44100, Channels: 2}
	assert.Equal(t, 1000, clip.DurationMS())
}

func TestPCMBytesLittleEndian(t *testing.T) {
	got := PCMBytes([]int{0, 1, -1, 256, -32768, 32767})
	want := []byte{
		0x00, 0x00,
		0x01, 0x00,
		0xff, 0xff,
		0x00, 0x01,
		0x00, 0x80,
		0xff, 0x7f,
	}
	assert.Equal(t, want, got)
}

func TestSamplesFromPCMRoundTrip(t *testing.T) {
	samples := []int{0, 1, -1, 256, -32768, 32767}
	assert.Equal(t, samples, SamplesFromPCM(PCMBytes(samples)))
}

func TestSamplesFromPCMDropsTrailingByte(t *testing.T) {
	got := SamplesFromPCM([]byte{0x01, 0x00, 0xff})
	assert.Equal(t, []int{1}, got)
}

func TestIsMono16kWavFile(t *testing.T) {
	dir := t.TempDir()

	mono := filepath.Join(dir, "mono.wav")
	require.NoError(t, WriteWavFile(mono, make([]int, 16000), 16000, 1))
	ok, err := IsMono16kWavFile(mono)
	require.NoError(t, err)
	assert.True(t, ok)

	stereo := filepath.Join(dir, "stereo.wav")
	require.NoError(t, WriteWavFile(stereo, make([]int, 88200), 44100, 2))
	ok, err = IsMono16kWavFile(stereo)
	require.NoError(t, err)
	assert.False(t, ok)

	// Non-wav extensions never conform, corrupt headers just fail the check.
	mp3 := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(mp3, []byte("ID3"), 0644))
	ok, err = IsMono16kWavFile(mp3)
	require.NoError(t, err)
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.wav")
	require.NoError(t, os.WriteFile(corrupt, []byte("not riff data"), 0644))
	ok, err = IsMono16kWavFile(corrupt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureMono16kWavKeepsConformingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "already_mono.wav")
	require.NoError(t, WriteWavFile(path, make([]int, 16000), 16000, 1))

	got, err := EnsureMono16kWav(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestEnsureMono16kWavMissingInput(t *testing.T) {
	_, err := EnsureMono16kWav(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}
