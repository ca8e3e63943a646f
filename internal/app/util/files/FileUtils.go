package files

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	apperrors "speech2text/internal/app/errors"
)

// FileInfo describes one audio file discovered in an input directory.
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
}

// audioExtensions lists the input formats the pipeline accepts. Anything
// else found in the input directory is ignored.
var audioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".m4a": true,
}

func GetProjectRoot() (string, error) {
	_, filename, _, _ := runtime.Caller(0)
	return findGoModRoot(filename)
}

// GetAllAudioFiles returns the audio files in inputDir ordered by
// modification time, oldest first.
func GetAllAudioFiles(inputDir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read input directory '%s'", inputDir)
	}

	var fileInfos []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		fileInfos = append(fileInfos, FileInfo{
			FullPath: filepath.Join(inputDir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})

	return fileInfos, nil
}

// EnsureDirectory creates dir if it does not exist yet.
func EnsureDirectory(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func findGoModRoot(path string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, nil
		}
		newPath := filepath.Dir(path)
		if newPath == path {
			return "", fmt.Errorf("go.mod not found")
		}
		path = newPath
	}
}
