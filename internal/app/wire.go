//go:build wireinject
// +build wireinject

package app

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"speech2text/internal/app/api"
	"speech2text/internal/app/api/googlespeech"
	"speech2text/internal/app/api/openai"
	"speech2text/internal/app/api/openai/whisper"
	"speech2text/internal/app/common"
	"speech2text/internal/app/config"
	"speech2text/internal/app/converter"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/pg"
	"speech2text/internal/app/repository/sqlite"
	"speech2text/internal/app/util/files"
)

// provideRecognizer picks the speech backend from config/recognizers.yaml,
// overridable with S2T_RECOGNIZER. The google backend needs
// GOOGLE_SPEECH_API_KEY, the whisper backend needs OPENAI_API_KEY.
func provideRecognizer() api.Recognizer {
	cfg := loadRecognizersConfig()

	name := os.Getenv("S2T_RECOGNIZER")
	if name == "" {
		name = cfg.DefaultRecognizer
	}

	switch name {
	case config.RecognizerWhisper:
		return whisper.NewRemoteRecognizer(openai.GetClient())
	case config.RecognizerGoogle:
		return googlespeech.NewGoogleSpeechRecognizer(googlespeech.GoogleSpeechConfig{
			Endpoint: cfg.Google.Endpoint,
			APIKey:   os.Getenv("GOOGLE_SPEECH_API_KEY"),
			Timeout:  time.Duration(cfg.Google.TimeoutSec) * time.Second,
		})
	default:
		log.Fatalf("Unknown recognizer %q\n", name)
		return nil
	}
}

func loadRecognizersConfig() *config.RecognizersConfig {
	projectRoot, err := files.GetProjectRoot()
	if err != nil {
		log.Fatalf("Failed to get project root: %v\n", err)
	}

	cfg, err := config.LoadRecognizersConfig(filepath.Join(projectRoot, "config/recognizers.yaml"))
	if err != nil {
		log.Fatalf("Failed to load recognizers config: %v\n", err)
	}
	return cfg
}

// provideTranscriptionDAO defaults to sqlite under data/, S2T_POSTGRES_URL
// switches the run history to Postgres.
func provideTranscriptionDAO() repository.TranscriptionDAO {
	if pgURL := os.Getenv("S2T_POSTGRES_URL"); pgURL != "" {
		dao, err := pg.NewPostgresDB(pgURL)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v\n", err)
		}
		return dao
	}

	dbPath, err := sqlite.DefaultDBPath()
	if err != nil {
		log.Fatalf("Failed to locate database: %v\n", err)
	}
	return sqlite.NewSQLiteDB(dbPath)
}

func provideLogger() *zap.Logger {
	return common.MustNewLogger(os.Getenv("S2T_DEBUG") != "")
}

func InitializeConverter() *converter.Converter {
	wire.Build(
		converter.NewConverter,
		provideRecognizer,
		provideTranscriptionDAO,
		provideLogger,
	)
	return nil
}

func InitializeProgressAwareConverter(config converter.ProgressConfig) *converter.ProgressAwareConverter {
	wire.Build(
		converter.NewConverter,
		converter.NewProgressAwareConverter,
		provideRecognizer,
		provideTranscriptionDAO,
		provideLogger,
	)
	return nil
}

func InitializeTranscriptionDAO() repository.TranscriptionDAO {
	wire.Build(provideTranscriptionDAO)
	return nil
}
