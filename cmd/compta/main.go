package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/compta/internal/commands"
)

func main() {
	// A .env file may provide COMPTA_JOURNAL and COMPTA_CONFIG.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
