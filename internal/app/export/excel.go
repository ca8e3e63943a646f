package export

import (
	"fmt"
	"log"
	"time"

	"github.com/tealeg/xlsx"

	"speech2text/internal/app/model"
)

func ToExcel(transcriptions []model.Transcription, outputFilePath string) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		log.Fatal(err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "User"
	headerRow.AddCell().Value = "Last Conversion Time"
	headerRow.AddCell().Value = "WAV File Name"
	headerRow.AddCell().Value = "Audio Duration (s)"
	headerRow.AddCell().Value = "Transcription"
	headerRow.AddCell().Value = "Error Message"

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(t.ID)
		row.AddCell().Value = t.User
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.WavFileName
		row.AddCell().Value = fmt.Sprint(t.AudioDuration)
		row.AddCell().Value = t.Transcription
		row.AddCell().Value = t.ErrorMessage
	}

	err = file.Save(outputFilePath)
	if err != nil {
		log.Fatal(err)
	}
}
