package converter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"speech2text/internal/app/api"
	"speech2text/internal/app/audio"
	"speech2text/internal/app/config"
	"speech2text/internal/app/export"
	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/util/files"
)

type Converter struct {
	recognizer api.Recognizer
	db         repository.TranscriptionDAO
	logger     *zap.Logger
}

func NewConverter(recognizer api.Recognizer, transcriptionDAO repository.TranscriptionDAO, logger *zap.Logger) *Converter {
	return &Converter{
		recognizer: recognizer,
		db:         transcriptionDAO,
		logger:     logger,
	}
}

func (c *Converter) Close() error {
	return c.db.Close()
}

// Do enumerates the audio files in inputDir oldest first, skips the ones
// already recorded as processed and pushes up to convertCount of the rest
// through TranscribeFile. A convertCount of zero or less means all of them.
func (c *Converter) Do(ctx context.Context, userNickname, inputDir, outputDir string, convertCount int,
	cfg *config.PipelineConfig, progress ProgressCallback) error {
	fileInfos, err := files.GetAllAudioFiles(inputDir)
	if err != nil {
		return err
	}
	if convertCount <= 0 {
		convertCount = len(fileInfos)
	}

	filesToProcess := c.filterUnProcessedFiles(fileInfos, convertCount)
	c.logger.Info("batch transcription starting",
		zap.String("user", userNickname),
		zap.String("input_dir", inputDir),
		zap.Int("found", len(fileInfos)),
		zap.Int("selected", len(filesToProcess)))

	for _, file := range filesToProcess {
		if _, err := c.TranscribeFile(ctx, userNickname, file.FullPath, outputDir, cfg, progress); err != nil {
			return fmt.Errorf("failed to transcribe '%s': %w", file.Name, err)
		}
	}
	return nil
}

func (c *Converter) filterUnProcessedFiles(fileInfos []files.FileInfo, convertCount int) []files.FileInfo {
	filesToProcess := make([]files.FileInfo, 0, convertCount)

	for _, fileInfo := range fileInfos {
		// Check if the file has been processed
		id, err := c.db.CheckIfFileProcessed(fileInfo.Name)
		if err == nil {
			fmt.Printf("File '%s' with '%d' has already been processed, skipping...\n", fileInfo.Name, id)
			continue
		}

		filesToProcess = append(filesToProcess, fileInfo)
		if len(filesToProcess) >= convertCount {
			break
		}
	}
	return filesToProcess
}

// TranscribeFile runs the pipeline for one file: conform the audio to mono
// 16 kHz WAV, split it into overlapping windows, recognize the windows in
// order, then write the transcript and the SRT in one shot each.
//
// A window without speech produces no segment. A window that fails with a
// *api.RecognitionError is logged and skipped so one bad request cannot
// sink a long run. Any other error aborts the run.
func (c *Converter) TranscribeFile(ctx context.Context, userNickname, inputPath, outputDir string,
	cfg *config.PipelineConfig, progress ProgressCallback) (*model.TranscriptionResult, error) {
	if cfg == nil {
		defaults := config.NewDefaultPipelineConfig()
		cfg = &defaults
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fileName := filepath.Base(inputPath)

	if strings.ToLower(filepath.Ext(inputPath)) != ".wav" {
		if seconds, err := audio.GetAudioDuration(inputPath); err == nil {
			c.logger.Info("conforming source audio",
				zap.String("input", inputPath),
				zap.Int("duration_s", seconds))
		}
	}

	wavPath, err := audio.EnsureMono16kWav(inputPath)
	if err != nil {
		c.recordFailure(userNickname, inputPath, fileName, "", 0, fmt.Sprintf("audio conformance failed: %v", err))
		return nil, fmt.Errorf("audio conformance failed for '%s': %w", inputPath, err)
	}
	wavFileName := filepath.Base(wavPath)

	clip, err := audio.ReadWavFile(wavPath)
	if err != nil {
		c.recordFailure(userNickname, inputPath, fileName, wavFileName, 0, fmt.Sprintf("wav decode failed: %v", err))
		return nil, err
	}

	durationMS := clip.DurationMS()
	windows, err := audio.Partition(durationMS, cfg.ChunkMS, cfg.OverlapMS)
	if err != nil {
		return nil, err
	}

	c.logger.Info("transcription started",
		zap.String("input", inputPath),
		zap.String("language", cfg.Language),
		zap.Int("duration_ms", durationMS),
		zap.Int("windows", len(windows)))

	segments := make([]model.Segment, 0, len(windows))
	failedWindows := 0

	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			c.recordFailure(userNickname, inputPath, fileName, wavFileName, durationMS/1000,
				fmt.Sprintf("run canceled: %v", err))
			return nil, err
		}

		pcm := audio.PCMBytes(clip.SliceWindow(w))
		text, err := c.recognizer.Recognize(ctx, pcm, clip.SampleRate, cfg.Language)

		var recErr *api.RecognitionError
		switch {
		case errors.Is(err, api.ErrNoSpeech):
			// Nothing spoken in this window.
		case errors.As(err, &recErr):
			failedWindows++
			c.logger.Warn("window recognition failed",
				zap.Int("start_ms", w.StartMS),
				zap.Int("end_ms", w.EndMS),
				zap.String("code", recErr.Code),
				zap.String("provider", recErr.Provider),
				zap.Bool("retryable", recErr.Retryable),
				zap.Error(recErr))
		case err != nil:
			c.recordFailure(userNickname, inputPath, fileName, wavFileName, durationMS/1000,
				fmt.Sprintf("window %d-%dms: %v", w.StartMS, w.EndMS, err))
			return nil, fmt.Errorf("window %d-%dms: %w", w.StartMS, w.EndMS, err)
		case text != "":
			segments = append(segments, model.Segment{StartMS: w.StartMS, EndMS: w.EndMS, Text: text})
		}

		if progress != nil {
			progress(i+1, len(windows))
		}
	}

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	if err := files.EnsureDirectory(outputDir); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	transcriptPath := filepath.Join(outputDir, base+".txt")
	srtPath := filepath.Join(outputDir, base+".srt")

	if err := export.WriteTranscriptFile(transcriptPath, segments); err != nil {
		c.recordFailure(userNickname, inputPath, fileName, wavFileName, durationMS/1000,
			fmt.Sprintf("transcript write failed: %v", err))
		return nil, err
	}
	if err := export.WriteSRTFile(srtPath, segments); err != nil {
		c.recordFailure(userNickname, inputPath, fileName, wavFileName, durationMS/1000,
			fmt.Sprintf("srt write failed: %v", err))
		return nil, err
	}

	transcript := export.JoinTranscript(segments)
	c.db.RecordToDB(userNickname, filepath.Dir(inputPath), fileName, wavFileName, durationMS/1000,
		transcript, time.Now(), 0, "")

	c.logger.Info("transcription completed",
		zap.String("transcript", transcriptPath),
		zap.String("srt", srtPath),
		zap.Int("segments", len(segments)),
		zap.Int("failed_windows", failedWindows))

	return &model.TranscriptionResult{
		Transcript:     transcript,
		Segments:       segments,
		TranscriptPath: transcriptPath,
		SRTPath:        srtPath,
		DurationMS:     durationMS,
		WindowCount:    len(windows),
		FailedWindows:  failedWindows,
	}, nil
}

func (c *Converter) recordFailure(userNickname, inputPath, fileName, wavFileName string, durationSeconds int, message string) {
	c.db.RecordToDB(userNickname, filepath.Dir(inputPath), fileName, wavFileName, durationSeconds,
		"", time.Now(), 1, message)
}
