package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"speech2text/internal/app"
	"speech2text/internal/app/export"
)

var userNickname string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&userNickname, "userNickname", "n", "", "set userNickname")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("userNickname")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the specified user's transcriptions to excel",
	Long: `Export the specified user's transcriptions to excel

- Export all the user's transcription history to excel, currently does not support a limited number`,
	Run: func(cmd *cobra.Command, args []string) {
		db := app.InitializeTranscriptionDAO()
		defer db.Close()

		transcriptions, err := db.GetAllByUser(userNickname)
		if err != nil {
			log.Fatal(err)
		}

		export.ToExcel(transcriptions, outputFilePath)
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
