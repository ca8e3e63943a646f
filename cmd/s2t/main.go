package main

import (
	"fmt"
	"os"

	"speech2text/cmd/s2t/cmd"
	"speech2text/internal/config"
)

func main() {
	// Initialize configuration (non-blocking - only warns about missing keys)
	_, err := config.InitializeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
		fmt.Fprintf(os.Stderr, "💡 To enable transcription, copy .env.example to .env and add your API keys\n")
		// Continue execution - don't exit
	}

	// Execute the CLI command
	cmd.Execute()
}
