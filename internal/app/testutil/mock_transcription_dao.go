package testutil

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"speech2text/internal/app/model"
	"speech2text/internal/app/repository"
)

// RecordedRow is one RecordToDB call, kept verbatim for assertions.
type RecordedRow struct {
	User               string
	InputDir           string
	FileName           string
	WavFileName        string
	AudioDuration      int
	Transcription      string
	LastConversionTime time.Time
	HasError           int
	ErrorMessage       string
}

// MockTranscriptionDAO is an in-memory TranscriptionDAO for converter and
// command tests.
type MockTranscriptionDAO struct {
	mu        sync.RWMutex
	rows      []RecordedRow
	processed map[string]int
	closed    bool
}

var _ repository.TranscriptionDAO = (*MockTranscriptionDAO)(nil)

func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{processed: make(map[string]int)}
}

// MarkProcessed makes CheckIfFileProcessed treat fileName as already done.
func (m *MockTranscriptionDAO) MarkProcessed(fileName string, id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed[fileName] = id
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockTranscriptionDAO) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *MockTranscriptionDAO) CheckIfFileProcessed(fileName string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id, ok := m.processed[fileName]; ok {
		return id, nil
	}
	for i, row := range m.rows {
		if row.FileName == fileName && row.HasError == 0 {
			return i + 1, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (m *MockTranscriptionDAO) RecordToDB(user, inputDir, fileName, wavFileName string, audioDuration int,
	transcription string, lastConversionTime time.Time, hasError int, errorMessage string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = append(m.rows, RecordedRow{
		User:               user,
		InputDir:           inputDir,
		FileName:           fileName,
		WavFileName:        wavFileName,
		AudioDuration:      audioDuration,
		Transcription:      transcription,
		LastConversionTime: lastConversionTime,
		HasError:           hasError,
		ErrorMessage:       errorMessage,
	})
}

func (m *MockTranscriptionDAO) GetAllByUser(userNickname string) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Transcription
	for i, row := range m.rows {
		if row.User != userNickname || row.HasError != 0 {
			continue
		}
		out = append(out, model.Transcription{
			ID:                 i + 1,
			User:               row.User,
			LastConversionTime: row.LastConversionTime,
			WavFileName:        row.WavFileName,
			AudioDuration:      row.AudioDuration,
			Transcription:      row.Transcription,
			ErrorMessage:       row.ErrorMessage,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastConversionTime.After(out[j].LastConversionTime)
	})
	return out, nil
}

// Rows returns a copy of every recorded row in insertion order.
func (m *MockTranscriptionDAO) Rows() []RecordedRow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RecordedRow(nil), m.rows...)
}
