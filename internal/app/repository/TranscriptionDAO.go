package repository

import (
	"time"

	"speech2text/internal/app/model"
)

// TranscriptionDAO persists the run history so batch mode can skip files
// that already transcribed cleanly.
type TranscriptionDAO interface {
	Close() error

	GetAllByUser(userNickname string) ([]model.Transcription, error)

	CheckIfFileProcessed(fileName string) (int, error)

	RecordToDB(user, inputDir, fileName, wavFileName string, audioDuration int, transcription string,
		lastConversionTime time.Time, hasError int, errorMessage string)
}
