package record

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"speech2text/internal/app"
	appconfig "speech2text/internal/app/config"
	"speech2text/internal/app/converter"
	"speech2text/internal/app/recorder"
	"speech2text/internal/config"
)

var outputPath string
var seconds int
var transcribeAfter bool

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"path of the WAV file to write, defaults to recording_<id>.wav in the current directory")
	Cmd.Flags().IntVarP(&seconds, "seconds", "s", appconfig.DefaultRecordSeconds,
		"recording duration in seconds")
	Cmd.Flags().BoolVar(&transcribeAfter, "transcribe", false,
		"transcribe the recording right away, example: s2t record -s 8 --transcribe")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record a clip from the default input device into a WAV file",
	Long: `Record a clip from the default input device into a WAV file

- Captures 16 kHz mono 16-bit PCM, ready for transcription
- Pass --transcribe to run the recognizer on the capture right away`,
	Run: func(cmd *cobra.Command, args []string) {
		if outputPath == "" {
			outputPath = fmt.Sprintf("recording_%s.wav", uuid.NewString())
		}

		fmt.Printf("Recording %d seconds from the default input device...\n", seconds)
		err := recorder.RecordToWav(outputPath, seconds, appconfig.DefaultSampleRate, appconfig.DefaultChannels)
		if err != nil {
			log.Fatalf("Recording failed: %v\n", err)
		}
		fmt.Printf("Saved recording to %s\n", outputPath)

		if !transcribeAfter {
			return
		}

		apiKeys, err := config.GetAPIKeys()
		if err == nil {
			err = config.RequireAPIKeys(apiKeys)
		}
		if err != nil {
			log.Fatalf("%v\n", err)
		}

		conv := app.InitializeProgressAwareConverter(converter.ProgressConfig{
			Enabled: converter.ShouldShowProgress(false),
		})
		defer conv.Close()

		result, err := conv.TranscribeFileWithProgress(context.Background(), "local", outputPath, "", nil)
		if err != nil {
			log.Fatalf("Transcription failed: %v\n", err)
		}

		fmt.Printf("transcript: %s\n", result.TranscriptPath)
		if result.Transcript != "" {
			fmt.Println(result.Transcript)
		}
	},
}
