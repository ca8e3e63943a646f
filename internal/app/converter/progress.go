package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"speech2text/internal/app/config"
	"speech2text/internal/app/model"
	"speech2text/internal/app/util/files"
)

// ProgressCallback reports how many windows of the current file are done,
// counting the silent and the failed ones too.
type ProgressCallback func(completed, total int)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DidentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WCSyncSpace), " ✓ "),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *ProgressBar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

func (pb *ProgressBar) SetTotal(total int64) {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(total, false)
	}
}

func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

func (pm *ProgressManager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *ProgressManager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}

func FormatProgressDescription(action string, userNickname string) string {
	if userNickname != "" {
		return fmt.Sprintf("%s (%s)", action, userNickname)
	}
	return action
}

// ProgressAwareConverter renders one mpb bar per file, one tick per
// window, on top of the plain Converter.
type ProgressAwareConverter struct {
	*Converter
	progressManager *ProgressManager
}

func NewProgressAwareConverter(converter *Converter, config ProgressConfig) *ProgressAwareConverter {
	return &ProgressAwareConverter{
		Converter:       converter,
		progressManager: NewProgressManager(config),
	}
}

func (pac *ProgressAwareConverter) Close() error {
	if pac.progressManager != nil {
		pac.progressManager.Shutdown()
	}
	return pac.Converter.Close()
}

func (pac *ProgressAwareConverter) TranscribeFileWithProgress(ctx context.Context, userNickname, inputPath, outputDir string,
	cfg *config.PipelineConfig) (*model.TranscriptionResult, error) {
	defer pac.waitForProgress()
	return pac.transcribeFileWithBar(ctx, userNickname, inputPath, outputDir, cfg)
}

func (pac *ProgressAwareConverter) DoWithProgress(ctx context.Context, userNickname, inputDir, outputDir string,
	convertCount int, cfg *config.PipelineConfig) error {
	defer pac.waitForProgress()

	fileInfos, err := files.GetAllAudioFiles(inputDir)
	if err != nil {
		return err
	}
	if convertCount <= 0 {
		convertCount = len(fileInfos)
	}

	filesToProcess := pac.filterUnProcessedFiles(fileInfos, convertCount)
	for _, file := range filesToProcess {
		if _, err := pac.transcribeFileWithBar(ctx, userNickname, file.FullPath, outputDir, cfg); err != nil {
			return fmt.Errorf("failed to transcribe '%s': %w", file.Name, err)
		}
	}
	return nil
}

func (pac *ProgressAwareConverter) transcribeFileWithBar(ctx context.Context, userNickname, inputPath, outputDir string,
	cfg *config.PipelineConfig) (*model.TranscriptionResult, error) {
	description := FormatProgressDescription(filepath.Base(inputPath), userNickname)

	// The window count is only known once the file is decoded, so the bar
	// appears on the first callback.
	var bar *ProgressBar
	progress := func(completed, total int) {
		if bar == nil {
			bar = pac.createProgressBar(total, description)
		}
		bar.Increment()
	}

	result, err := pac.TranscribeFile(ctx, userNickname, inputPath, outputDir, cfg, progress)
	if bar != nil {
		bar.Complete()
	}
	return result, err
}

func (pac *ProgressAwareConverter) createProgressBar(total int, description string) *ProgressBar {
	if pac.progressManager == nil {
		return &ProgressBar{enabled: false}
	}
	return pac.progressManager.CreateBar(total, description)
}

func (pac *ProgressAwareConverter) waitForProgress() {
	if pac.progressManager != nil {
		pac.progressManager.Wait()
	}
}
