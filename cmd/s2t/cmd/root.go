package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/export"
	"speech2text/cmd/s2t/cmd/record"
	"speech2text/cmd/s2t/cmd/transcribe"
	"speech2text/cmd/s2t/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2t",
	Short: "An application for converting speech to text, from WAV files or the microphone",
	Long: `An application for converting speech to text, from WAV files or the microphone.
- Transcribe a single WAV file or a whole directory of audio files
- Record from the default input device and optionally transcribe right away
- The processed records are saved to sqlite and can be exported to excel.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
