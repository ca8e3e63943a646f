package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/util/files"
)

// createTableSQL is embedded so a fresh checkout can open its history
// database without a separate setup step.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions
(
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    user                 TEXT    NOT NULL,
    input_dir            TEXT    NOT NULL,
    file_name            TEXT    NOT NULL,
    wav_file_name        TEXT    NOT NULL,
    audio_duration       INTEGER NOT NULL,
    transcription        TEXT,
    last_conversion_time TIMESTAMP NOT NULL,
    has_error            INTEGER DEFAULT 0,
    error_message        TEXT
);

CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions (file_name);
CREATE INDEX IF NOT EXISTS idx_transcriptions_user ON transcriptions (user);
`

// DefaultDBPath returns <projectRoot>/data/transcriptions.db, creating the
// data directory when missing.
func DefaultDBPath() (string, error) {
	projectRoot, err := files.GetProjectRoot()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to get project root")
	}

	dataDir := filepath.Join(projectRoot, "data")
	if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dataDir, "transcriptions.db"), nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
