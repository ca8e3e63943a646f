package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/pg"
	"speech2text/internal/app/repository/sqlite"
)

// SetupTestDAO returns a throwaway sqlite-backed TranscriptionDAO in a
// temp directory, or a Postgres one when POSTGRES_TEST_URL is set.
func SetupTestDAO(t *testing.T) repository.TranscriptionDAO {
	t.Helper()

	if pgURL := os.Getenv("POSTGRES_TEST_URL"); pgURL != "" {
		dao, err := pg.NewPostgresDB(pgURL)
		if err != nil {
			t.Fatalf("failed to connect to test postgres: %v", err)
		}
		t.Cleanup(func() { dao.Close() })
		return dao
	}

	dao := sqlite.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { dao.Close() })
	return dao
}
