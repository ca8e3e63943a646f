package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"speech2text/internal/app/model"
)

// FormatTimestamp renders a millisecond offset as an SRT timestamp,
// HH:MM:SS,mmm with zero padding.
func FormatTimestamp(ms int) string {
	hours := ms / 3600000
	minutes := ms % 3600000 / 60000
	seconds := ms % 60000 / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// JoinTranscript concatenates all non-empty segment texts with single
// spaces to form the flat transcript.
func JoinTranscript(segments []model.Segment) string {
	texts := lo.FilterMap(segments, func(s model.Segment, _ int) (string, bool) {
		return s.Text, s.Text != ""
	})
	return strings.Join(texts, " ")
}

// BuildSRT renders segments as SRT subtitle entries numbered from 1.
// Each entry is an index line, a time-range line, the trimmed text and
// a blank separator line. Segments whose trimmed text is empty are
// skipped without consuming an index.
func BuildSRT(segments []model.Segment) string {
	var lines []string
	index := 1
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines, strconv.Itoa(index))
		lines = append(lines, fmt.Sprintf("%s --> %s", FormatTimestamp(seg.StartMS), FormatTimestamp(seg.EndMS)))
		lines = append(lines, text)
		lines = append(lines, "")
		index++
	}
	return strings.Join(lines, "\n")
}

// WriteTranscriptFile writes the flat transcript in one shot.
func WriteTranscriptFile(path string, segments []model.Segment) error {
	return os.WriteFile(path, []byte(JoinTranscript(segments)), 0644)
}

// WriteSRTFile writes the rendered subtitle entries in one shot.
func WriteSRTFile(path string, segments []model.Segment) error {
	return os.WriteFile(path, []byte(BuildSRT(segments)), 0644)
}
