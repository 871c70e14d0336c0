package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdfextract/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "pdfextract",
	Short: "Extract text from PDFs stored in R2, with OCR fallback",
	Long: `pdfextract scans a Cloudflare R2 bucket for PDF documents, extracts
per-page text from the embedded text layer, falls back to OCR for pages
with too little native text, and writes one JSON artifact per document
back to the bucket.

Documents that already have an extraction artifact are skipped, so the
tool is safe to run periodically over a growing corpus.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use --help to see available commands.")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
