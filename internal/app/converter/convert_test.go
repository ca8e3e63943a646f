package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"speech2text/internal/app/api"
	"speech2text/internal/app/config"
	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/testutil"
)

func newTestConverter(t *testing.T, recognizer *testutil.MockRecognizer) (*Converter, *testutil.MockTranscriptionDAO) {
	t.Helper()
	dao := testutil.NewMockTranscriptionDAO()
	return NewConverter(recognizer, dao, zaptest.NewLogger(t)), dao
}

// shortWindowConfig splits a 2.5 s clip into windows (0,1000), (900,1900)
// and (1800,2500).
func shortWindowConfig() *config.PipelineConfig {
	cfg := config.NewDefaultPipelineConfig()
	cfg.ChunkMS = 1000
	cfg.OverlapMS = 100
	return &cfg
}

func TestTranscribeFileWritesTranscriptAndSRT(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "meeting.wav")
	testutil.WriteTestWav(t, input, 2500)

	recognizer := testutil.NewMockRecognizer(
		testutil.ScriptedResult{Text: "hello"},
		testutil.ScriptedResult{Err: api.ErrNoSpeech},
		testutil.ScriptedResult{Text: "world"},
	)
	conv, dao := newTestConverter(t, recognizer)

	var progressCalls [][2]int
	progress := func(completed, total int) {
		progressCalls = append(progressCalls, [2]int{completed, total})
	}

	result, err := conv.TranscribeFile(context.Background(), "alice", input, "", shortWindowConfig(), progress)
	require.NoError(t, err)

	assert.Equal(t, "hello world", result.Transcript)
	assert.Equal(t, 2500, result.DurationMS)
	assert.Equal(t, 3, result.WindowCount)
	assert.Equal(t, 0, result.FailedWindows)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, 0, result.Segments[0].StartMS)
	assert.Equal(t, 1000, result.Segments[0].EndMS)
	assert.Equal(t, 1800, result.Segments[1].StartMS)
	assert.Equal(t, 2500, result.Segments[1].EndMS)

	transcript, err := os.ReadFile(result.TranscriptPath)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(transcript))

	srt, err := os.ReadFile(result.SRTPath)
	require.NoError(t, err)
	wantSRT := "1\n00:00:00,000 --> 00:00:01,000\nhello\n\n2\n00:00:01,800 --> 00:00:02,500\nworld\n"
	assert.Equal(t, wantSRT, string(srt))

	// Outputs land next to the input when no output dir is given.
	assert.Equal(t, filepath.Join(dir, "meeting.txt"), result.TranscriptPath)
	assert.Equal(t, filepath.Join(dir, "meeting.srt"), result.SRTPath)

	// One history row, successful, duration in whole seconds.
	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].User)
	assert.Equal(t, "meeting.wav", rows[0].FileName)
	assert.Equal(t, "meeting.wav", rows[0].WavFileName)
	assert.Equal(t, 2, rows[0].AudioDuration)
	assert.Equal(t, "hello world", rows[0].Transcription)
	assert.Equal(t, 0, rows[0].HasError)

	// Window-level progress, totals stable across calls.
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progressCalls)

	// Each window went out as 16-bit PCM at the clip rate.
	calls := recognizer.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 32000, calls[0].PCMLen)
	assert.Equal(t, 32000, calls[1].PCMLen)
	assert.Equal(t, 22400, calls[2].PCMLen)
	for _, call := range calls {
		assert.Equal(t, 16000, call.SampleRate)
		assert.Equal(t, "en-IN", call.Language)
	}
}

func TestTranscribeFileSkipsFailedWindows(t *testing.T) {
	input := filepath.Join(t.TempDir(), "flaky.wav")
	testutil.WriteTestWav(t, input, 2500)

	recognizer := testutil.NewMockRecognizer(
		testutil.ScriptedResult{Text: "start"},
		testutil.ScriptedResult{Err: &api.RecognitionError{
			Code: "api_error", Message: "upstream 500", Provider: "google_speech", Retryable: true,
		}},
		testutil.ScriptedResult{Text: "end"},
	)
	conv, dao := newTestConverter(t, recognizer)

	result, err := conv.TranscribeFile(context.Background(), "alice", input, "", shortWindowConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "start end", result.Transcript)
	assert.Equal(t, 1, result.FailedWindows)
	assert.Len(t, result.Segments, 2)

	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].HasError)
}

func TestTranscribeFileAbortsOnUnexpectedError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doomed.wav")
	testutil.WriteTestWav(t, input, 2500)

	recognizer := testutil.NewMockRecognizer(
		testutil.ScriptedResult{Text: "fine"},
		testutil.ScriptedResult{Err: errors.New("connection reset mid-flight")},
	)
	conv, dao := newTestConverter(t, recognizer)

	result, err := conv.TranscribeFile(context.Background(), "alice", input, "", shortWindowConfig(), nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "connection reset mid-flight")

	// The run died before any output was written.
	assert.NoFileExists(t, filepath.Join(dir, "doomed.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "doomed.srt"))

	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].HasError)
	assert.Contains(t, rows[0].ErrorMessage, "connection reset mid-flight")
}

func TestTranscribeFileRejectsInvalidConfig(t *testing.T) {
	input := filepath.Join(t.TempDir(), "short.wav")
	testutil.WriteTestWav(t, input, 1000)

	recognizer := testutil.NewMockRecognizer()
	conv, _ := newTestConverter(t, recognizer)

	cfg := config.NewDefaultPipelineConfig()
	cfg.ChunkMS = 1000
	cfg.OverlapMS = 1000

	_, err := conv.TranscribeFile(context.Background(), "alice", input, "", &cfg, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	assert.Empty(t, recognizer.Calls())
}

func TestTranscribeFileAllSilence(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "quiet.wav")
	testutil.WriteTestWav(t, input, 2500)

	// An empty script means every window comes back as no-speech.
	recognizer := testutil.NewMockRecognizer()
	conv, dao := newTestConverter(t, recognizer)

	result, err := conv.TranscribeFile(context.Background(), "alice", input, "", shortWindowConfig(), nil)
	require.NoError(t, err)

	assert.Empty(t, result.Transcript)
	assert.Empty(t, result.Segments)
	assert.Equal(t, 3, result.WindowCount)

	transcript, err := os.ReadFile(result.TranscriptPath)
	require.NoError(t, err)
	assert.Empty(t, string(transcript))

	srt, err := os.ReadFile(result.SRTPath)
	require.NoError(t, err)
	assert.Empty(t, string(srt))

	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].HasError)
	assert.Empty(t, rows[0].Transcription)
}

func TestTranscribeFileNilConfigUsesDefaults(t *testing.T) {
	input := filepath.Join(t.TempDir(), "clip.wav")
	testutil.WriteTestWav(t, input, 2500)

	recognizer := testutil.NewMockRecognizer(testutil.ScriptedResult{Text: "all of it"})
	conv, _ := newTestConverter(t, recognizer)

	result, err := conv.TranscribeFile(context.Background(), "alice", input, "", nil, nil)
	require.NoError(t, err)

	// 2.5 s fits inside the default 30 s chunk, so exactly one window.
	assert.Equal(t, 1, result.WindowCount)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, 0, result.Segments[0].StartMS)
	assert.Equal(t, 2500, result.Segments[0].EndMS)
	assert.Equal(t, "all of it", result.Transcript)
}

func TestTranscribeFileStopsWhenContextCanceled(t *testing.T) {
	input := filepath.Join(t.TempDir(), "canceled.wav")
	testutil.WriteTestWav(t, input, 2500)

	recognizer := testutil.NewMockRecognizer()
	conv, dao := newTestConverter(t, recognizer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.TranscribeFile(ctx, "alice", input, "", shortWindowConfig(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recognizer.Calls())

	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].HasError)
}

func TestTranscribeFileWritesIntoOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "talk.wav")
	testutil.WriteTestWav(t, input, 1000)
	outDir := filepath.Join(dir, "out", "nested")

	recognizer := testutil.NewMockRecognizer(testutil.ScriptedResult{Text: "content"})
	conv, _ := newTestConverter(t, recognizer)

	result, err := conv.TranscribeFile(context.Background(), "alice", input, outDir, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "talk.txt"), result.TranscriptPath)
	assert.Equal(t, filepath.Join(outDir, "talk.srt"), result.SRTPath)
	assert.FileExists(t, result.TranscriptPath)
	assert.FileExists(t, result.SRTPath)
}

func TestTranscribeFileMissingInput(t *testing.T) {
	recognizer := testutil.NewMockRecognizer()
	conv, dao := newTestConverter(t, recognizer)

	_, err := conv.TranscribeFile(context.Background(), "alice", filepath.Join(t.TempDir(), "gone.wav"), "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio conformance failed")

	rows := dao.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].HasError)
}

func TestDoProcessesOldestUnprocessedFiles(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		filepath.Join(dir, "first.wav"),
		filepath.Join(dir, "second.wav"),
		filepath.Join(dir, "third.wav"),
		filepath.Join(dir, "done.wav"),
	}
	for i, path := range paths {
		testutil.WriteTestWav(t, path, 1000)
		mt := time.Now().Add(time.Duration(i-4) * time.Hour)
		require.NoError(t, os.Chtimes(path, mt, mt))
	}

	recognizer := testutil.NewMockRecognizer(
		testutil.ScriptedResult{Text: "one"},
		testutil.ScriptedResult{Text: "two"},
	)
	conv, dao := newTestConverter(t, recognizer)
	dao.MarkProcessed("first.wav", 7)

	err := conv.Do(context.Background(), "alice", dir, "", 2, nil, nil)
	require.NoError(t, err)

	// The two oldest unprocessed files got transcripts, the rest did not.
	second, err := os.ReadFile(filepath.Join(dir, "second.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(second))

	third, err := os.ReadFile(filepath.Join(dir, "third.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(third))

	assert.NoFileExists(t, filepath.Join(dir, "first.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "done.txt"))

	assert.Len(t, dao.Rows(), 2)
}

func TestDoPropagatesFailure(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTestWav(t, filepath.Join(dir, "bad.wav"), 1000)

	recognizer := testutil.NewMockRecognizer(
		testutil.ScriptedResult{Err: errors.New("token expired")},
	)
	conv, _ := newTestConverter(t, recognizer)

	err := conv.Do(context.Background(), "alice", dir, "", 0, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.wav")
	assert.Contains(t, err.Error(), "token expired")
}

func TestConverterRecordsIntoRealDAO(t *testing.T) {
	input := filepath.Join(t.TempDir(), "real.wav")
	testutil.WriteTestWav(t, input, 1000)

	recognizer := testutil.NewMockRecognizer(testutil.ScriptedResult{Text: "persisted"})
	dao := testutil.SetupTestDAO(t)
	conv := NewConverter(recognizer, dao, zaptest.NewLogger(t))

	_, err := conv.TranscribeFile(context.Background(), "alice", input, "", nil, nil)
	require.NoError(t, err)

	id, err := dao.CheckIfFileProcessed("real.wav")
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	history, err := dao.GetAllByUser("alice")
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "persisted", history[0].Transcription)
}
