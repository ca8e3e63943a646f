package audio

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"

	apperrors "speech2text/internal/app/errors"
)

func GetAudioDuration(filePath string) (int, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	duration := int(math.Round(durationFloat))
	return duration, nil
}

// IsMono16kWavFile reports whether the file is already a mono 16 kHz
// signed 16-bit PCM WAV, judged from its RIFF header.
func IsMono16kWavFile(filePath string) (bool, error) {
	if strings.ToLower(filepath.Ext(filePath)) != ".wav" {
		return false, nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if d.Err() != nil {
		return false, nil
	}

	return d.WavAudioFormat == 1 && d.SampleRate == 16000 && d.NumChans == 1 && d.BitDepth == 16, nil
}

// EnsureMono16kWav returns a path to a mono 16 kHz 16-bit WAV with the
// same content as the input, converting only when the input does not
// already conform.
func EnsureMono16kWav(inputFilePath string) (string, error) {
	if _, err := os.Stat(inputFilePath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, inputFilePath)
	}

	ok, err := IsMono16kWavFile(inputFilePath)
	if err != nil {
		return "", fmt.Errorf("probe failed for '%s': %v", inputFilePath, err)
	}
	if ok {
		return inputFilePath, nil
	}

	return ConvertToMono16kWav(inputFilePath)
}

func ConvertToMono16kWav(inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_mono16k.wav"
	err := convertToMono16kWav(inputFilePath, outputFilePath)
	if err != nil {
		return "", err
	}

	return outputFilePath, nil
}

func convertToMono16kWav(inputAudioFilePath, outputWavPath string) error {
	if _, err := os.Stat(outputWavPath); !os.IsNotExist(err) {
		log.Printf("mono 16kHz WAV file already exists for '%s', skipping conversion.\n", inputAudioFilePath)
		return nil
	}

	ext := strings.ToLower(filepath.Ext(inputAudioFilePath))
	if ext != ".mp3" && ext != ".m4a" && ext != ".wav" {
		return apperrors.Newf("unsupported audio format not in [mp3,m4a,wav]: %s", ext)
	}

	log.Printf("convert to mono 16kHz wav: %s\n", inputAudioFilePath)

	cmd := exec.Command("ffmpeg", "-i", inputAudioFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	log.Printf("audio to mono 16kHz WAV conversion completed: '%s'\n", outputWavPath)
	return nil
}
