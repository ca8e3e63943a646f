package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"speech2text/internal/app"
	appconfig "speech2text/internal/app/config"
	"speech2text/internal/app/converter"
	"speech2text/internal/config"
)

var input string
var outputDir string
var language string
var chunkMs int
var overlapMs int
var userNickname string
var convertCount int
var showProgress bool

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "",
		"input specifies a WAV file or a directory of audio files, example: ./test/data/meeting.wav")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"directory for the .txt and .srt files, defaults to the input file's directory")
	Cmd.Flags().StringVarP(&language, "language", "l", appconfig.DefaultLanguage,
		"BCP-47 language tag sent to the recognizer")
	Cmd.Flags().IntVar(&chunkMs, "chunkMs", appconfig.DefaultChunkMS,
		"window length in milliseconds")
	Cmd.Flags().IntVar(&overlapMs, "overlapMs", appconfig.DefaultOverlapMS,
		"overlap between consecutive windows in milliseconds, must stay below chunkMs")
	Cmd.Flags().StringVarP(&userNickname, "userNickname", "n", "local",
		"Which user owns the recordings, this parameter affects the 'user' field when they are saved to the database")
	Cmd.Flags().IntVarP(&convertCount, "count", "c", 0,
		"maximum number of files to process in directory mode, 0 means all unprocessed files")
	Cmd.Flags().BoolVar(&showProgress, "progress", false,
		"show progress bars even when stderr is not a terminal")

	Cmd.MarkFlagRequired("input")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a WAV file or a directory of audio files to text and SRT subtitles",
	Long: `Transcribe a WAV file or a directory of audio files to text and SRT subtitles

- Splits the audio into overlapping windows and sends each window to the recognizer
- Writes <base>.txt and <base>.srt next to the input, or into --output
- In directory mode, iterates the audio files oldest first and skips already processed ones`,
	Run: func(cmd *cobra.Command, args []string) {
		apiKeys, err := config.GetAPIKeys()
		if err == nil {
			err = config.RequireAPIKeys(apiKeys)
		}
		if err != nil {
			log.Fatalf("%v\n", err)
		}

		info, err := os.Stat(input)
		if err != nil {
			log.Fatalf("Failed to read input '%s': %v\n", input, err)
		}

		cfg := appconfig.NewDefaultPipelineConfig()
		cfg.Language = language
		cfg.ChunkMS = chunkMs
		cfg.OverlapMS = overlapMs
		cfg.ShowProgress = showProgress

		conv := app.InitializeProgressAwareConverter(converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(showProgress),
		})
		defer conv.Close()

		ctx := context.Background()
		if info.IsDir() {
			if err := conv.DoWithProgress(ctx, userNickname, input, outputDir, convertCount, &cfg); err != nil {
				log.Fatalf("Transcription failed: %v\n", err)
			}
			return
		}

		result, err := conv.TranscribeFileWithProgress(ctx, userNickname, input, outputDir, &cfg)
		if err != nil {
			log.Fatalf("Transcription failed: %v\n", err)
		}

		fmt.Printf("transcript: %s\n", result.TranscriptPath)
		fmt.Printf("subtitles:  %s\n", result.SRTPath)
		if result.FailedWindows > 0 {
			fmt.Printf("%d of %d windows failed and were skipped\n", result.FailedWindows, result.WindowCount)
		}
	},
}
