package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pdfextract/internal/config"
	"pdfextract/internal/extract"
	"pdfextract/internal/logger"
	"pdfextract/internal/ocr"
	"pdfextract/internal/pipeline"
	"pdfextract/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract text from all pending PDFs in the bucket",
	Long: `Scan the configured R2 bucket for PDFs under the input prefix, extract
per-page text with OCR fallback for low-text pages, and write one JSON
artifact per document under the output prefix.

PDFs that already have an artifact are skipped, so repeated runs only
process new documents.

Required environment variables:
  R2_ACCOUNT_ID        - Cloudflare account ID
  R2_ACCESS_KEY_ID     - R2 access key
  R2_SECRET_ACCESS_KEY - R2 secret key
  R2_BUCKET_NAME       - Bucket to scan
  R2_PDF_PREFIX        - Input prefix holding PDFs
  R2_EXTRACT_PREFIX    - Output prefix for JSON artifacts

Optional environment variables:
  MIN_TEXT_CHARS_PER_PAGE - OCR trigger threshold (default: 30)
  OCR_DPI                 - Render resolution for OCR (default: 250)
  OCR_LANG                - Tesseract language (default: eng)
  OCR_ENGINE              - tesseract or vision (default: tesseract)
  LANGUAGE_HINT           - Language tag recorded in artifacts (default: en)`,
	Example: `  # Process every pending PDF
  pdfextract batch

  # Smoke-test a config change on a handful of documents
  pdfextract batch --limit 5`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("limit", 0, "Maximum number of documents to attempt (0 = no limit)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Interrupts cancel between documents; the one in flight finishes.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating R2 store: %w", err)
	}

	pageOCR, err := newPageOCR(ctx, cfg)
	if err != nil {
		return fmt.Errorf("creating OCR engine: %w", err)
	}
	if closer, ok := pageOCR.(io.Closer); ok {
		defer closer.Close()
	}

	log.Info().
		Str("bucket", cfg.Bucket).
		Str("pdf_prefix", cfg.PDFPrefix).
		Str("out_prefix", cfg.OutPrefix).
		Str("ocr_engine", cfg.OCREngine).
		Int("min_text_chars_per_page", cfg.MinTextCharsPerPage).
		Int("ocr_dpi", cfg.OCRDPI).
		Msg("Starting batch run")

	runner := pipeline.NewRunner(st, extract.NewEngine(pageOCR, cfg.MinTextCharsPerPage), cfg)
	runner.Method = fmt.Sprintf("pdftext+%s_ocr_fallback", cfg.OCREngine)
	runner.MethodVersion = version
	runner.Limit = limit

	return runner.Run(ctx)
}

func newPageOCR(ctx context.Context, cfg *config.Config) (extract.PageOCR, error) {
	switch cfg.OCREngine {
	case config.EngineVision:
		return ocr.NewVision(ctx, cfg.OCRDPI, cfg.LanguageHint)
	default:
		return ocr.NewTesseract(cfg.OCRDPI, cfg.OCRLang), nil
	}
}
