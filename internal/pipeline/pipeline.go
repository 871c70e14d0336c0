// Package pipeline runs the batch: list pending PDFs, extract each one, and
// persist the JSON artifact. Documents are processed strictly sequentially,
// and one document's failure never aborts the rest of the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pdfextract/internal/config"
	"pdfextract/internal/extract"
	"pdfextract/internal/logger"
	"pdfextract/internal/schema"
	"pdfextract/internal/store"
)

// Store is the object-store capability set the pipeline consumes.
type Store interface {
	Bucket() string
	ListPendingPDFs(ctx context.Context, pdfPrefix, outPrefix string) ([]string, error)
	Head(ctx context.Context, key string) (*store.ObjectInfo, error)
	GetBytes(ctx context.Context, key string) ([]byte, error)
	PutJSON(ctx context.Context, key string, v any) error
}

// Extractor produces an extraction outcome for one document.
type Extractor interface {
	Extract(ctx context.Context, pdfBytes []byte) (*extract.Result, error)
}

// Runner drives one batch run.
type Runner struct {
	// Method and MethodVersion are recorded in every artifact.
	Method        string
	MethodVersion string

	// Limit caps the number of documents attempted in one run; 0 means no
	// limit.
	Limit int

	store     Store
	extractor Extractor
	cfg       *config.Config
	now       func() time.Time
	log       zerolog.Logger
}

// NewRunner creates a Runner over the given store and extractor.
func NewRunner(st Store, extractor Extractor, cfg *config.Config) *Runner {
	return &Runner{
		store:     st,
		extractor: extractor,
		cfg:       cfg,
		now:       time.Now,
		log:       logger.WithComponent("pipeline"),
	}
}

// Run lists pending documents and processes them in listing order. It
// returns an error only for failures that invalidate the whole run (a
// listing failure or a canceled context); per-document failures are logged
// and skipped.
func (r *Runner) Run(ctx context.Context) error {
	keys, err := r.store.ListPendingPDFs(ctx, r.cfg.PDFPrefix, r.cfg.OutPrefix)
	if err != nil {
		return fmt.Errorf("listing pending PDFs: %w", err)
	}
	if len(keys) == 0 {
		r.log.Warn().
			Str("prefix", r.cfg.PDFPrefix).
			Str("bucket", r.store.Bucket()).
			Msg("No new PDFs found")
		return nil
	}

	r.log.Info().
		Int("count", len(keys)).
		Str("prefix", r.cfg.PDFPrefix).
		Msg("Found pending PDFs")

	var processed, failed int
	for _, key := range keys {
		if r.Limit > 0 && processed+failed >= r.Limit {
			r.log.Info().Int("limit", r.Limit).Msg("Run limit reached")
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processOne(ctx, key); err != nil {
			failed++
			r.log.Error().Err(err).Str("key", key).Msg("Document processing failed")
			continue
		}
		processed++
	}

	r.log.Info().
		Int("processed", processed).
		Int("failed", failed).
		Msg("Batch run complete")
	return nil
}

// processOne handles a single document end to end. The artifact is
// assembled only from a fully computed outcome and written last, so a
// failure anywhere leaves no partial artifact behind.
func (r *Runner) processOne(ctx context.Context, pdfKey string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected panic processing %q: %v", pdfKey, rec)
		}
	}()

	log := r.log.With().
		Str("bucket", r.store.Bucket()).
		Str("key", pdfKey).
		Logger()
	log.Info().Msg("Processing PDF")

	head, err := r.store.Head(ctx, pdfKey)
	if err != nil {
		return err
	}
	pdfBytes, err := r.store.GetBytes(ctx, pdfKey)
	if err != nil {
		return err
	}

	extractedAt := r.now()
	result, err := r.extractor.Extract(ctx, pdfBytes)
	if err != nil {
		return err
	}

	out := schema.BuildOutput(
		r.store.Bucket(), pdfKey, head,
		extractedAt, r.Method, r.MethodVersion, r.cfg.LanguageHint,
		result,
	)
	outKey := store.OutputKey(r.cfg.OutPrefix, pdfKey)
	if err := r.store.PutJSON(ctx, outKey, out); err != nil {
		return err
	}

	log.Info().
		Str("out_key", outKey).
		Int("pages", result.Stats.PageCount).
		Int("total_chars", result.Stats.TotalChars).
		Int("empty_pages", result.Stats.EmptyPageCount).
		Bool("scanned_suspected", result.ScannedSuspected).
		Msg("Wrote extraction artifact")
	return nil
}
