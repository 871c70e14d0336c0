package main

import (
	"log"

	"github.com/joho/godotenv"

	"pdfextract/cmd"
	"pdfextract/internal/config"
	"pdfextract/internal/logger"
)

func main() {
	// Optional for local dev; deployed runs get their environment from the scheduler.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		// Commands that need the full config fail fast themselves; keep a
		// usable logger so they can report it.
		if setupErr := logger.Setup(logger.DefaultConfig()); setupErr != nil {
			log.Fatalf("Failed to initialize logger: %v", setupErr)
		}
	} else {
		if setupErr := logger.Setup(cfg.LoggerConfig()); setupErr != nil {
			log.Fatalf("Failed to initialize logger: %v", setupErr)
		}
	}

	cmd.Execute()
}
