package audio

import (
	"errors"
	"fmt"

	"speech2text/internal/app/model"
)

// ErrInvalidChunking signals chunk/overlap parameters that cannot
// produce an advancing window cursor.
var ErrInvalidChunking = errors.New("invalid chunking parameters")

// Partition splits a total duration into ordered windows of chunkMS
// milliseconds, each overlapping the previous one by overlapMS. The
// final window ends exactly at durationMS and may be shorter than
// chunkMS. A non-positive duration yields no windows.
func Partition(durationMS, chunkMS, overlapMS int) ([]model.Window, error) {
	if chunkMS <= 0 {
		return nil, fmt.Errorf("%w: chunk %dms must be positive", ErrInvalidChunking, chunkMS)
	}
	if overlapMS < 0 {
		return nil, fmt.Errorf("%w: overlap %dms must not be negative", ErrInvalidChunking, overlapMS)
	}
	if overlapMS >= chunkMS {
		return nil, fmt.Errorf("%w: overlap %dms must be smaller than chunk %dms", ErrInvalidChunking, overlapMS, chunkMS)
	}

	var windows []model.Window
	cursor := 0
	for cursor < durationMS {
		end := cursor + chunkMS
		if end > durationMS {
			end = durationMS
		}
		windows = append(windows, model.Window{StartMS: cursor, EndMS: end})
		if end == durationMS {
			break
		}
		cursor = end - overlapMS
	}
	return windows, nil
}
