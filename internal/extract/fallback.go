// Package extract implements per-page text extraction with an OCR fallback
// for pages whose native text layer is too thin to trust.
package extract

import (
	"context"

	"github.com/rs/zerolog"

	"pdfextract/internal/logger"
)

// Ratios of low-content pages above which a document is classified as
// likely scanned.
const (
	scannedEmptyRatio   = 0.5
	scannedLowTextRatio = 0.8
)

// PageOCR recovers text from a rasterized page. pageIndex is zero-based.
// Implementations return already-normalized text.
type PageOCR interface {
	RecognizePage(ctx context.Context, pdfBytes []byte, pageIndex int) (string, error)
}

// Engine runs native extraction over a document and selectively re-extracts
// low-text pages through OCR.
type Engine struct {
	ocr      PageOCR
	minChars int
	native   func([]byte) ([]Page, error)
	log      zerolog.Logger
}

// NewEngine creates an extraction engine. Pages with fewer than
// minTextCharsPerPage native characters are sent to OCR; a value of 0
// disables OCR entirely.
func NewEngine(ocr PageOCR, minTextCharsPerPage int) *Engine {
	return &Engine{
		ocr:      ocr,
		minChars: minTextCharsPerPage,
		native:   ExtractNative,
		log:      logger.WithComponent("extract"),
	}
}

// Extract produces the extraction outcome for one document.
//
// OCR is advisory: a page's text is replaced only when OCR yields strictly
// more characters, and a per-page OCR failure keeps whatever native text
// existed for that page. The only fatal failure is an unparseable document.
func (e *Engine) Extract(ctx context.Context, pdfBytes []byte) (*Result, error) {
	pages, err := e.native(pdfBytes)
	if err != nil {
		return nil, err
	}

	// Classified once from the native pass, before any OCR. A signal for
	// downstream consumers, not a gate on the per-page fallback below.
	scanned := e.classifyScanned(pages)

	for i, p := range pages {
		if p.CharCount >= e.minChars {
			continue
		}
		ocrText, ocrErr := e.ocr.RecognizePage(ctx, pdfBytes, p.Number-1)
		if ocrErr != nil {
			e.log.Warn().
				Err(ocrErr).
				Int("page", p.Number).
				Msg("OCR failed; keeping native text for page")
			continue
		}
		if charCount(ocrText) > p.CharCount {
			pages[i] = NewPage(p.Number, ocrText)
		}
	}

	return &Result{
		Pages:            pages,
		ScannedSuspected: scanned,
		Stats:            computeStats(pages),
	}, nil
}

func (e *Engine) classifyScanned(pages []Page) bool {
	var empty, low int
	for _, p := range pages {
		if p.CharCount == 0 {
			empty++
		}
		if p.CharCount < e.minChars {
			low++
		}
	}
	// Floor at 1 so a zero-page document divides cleanly; it contributes 0
	// to both ratios and is not flagged.
	n := len(pages)
	if n == 0 {
		n = 1
	}
	return float64(empty)/float64(n) >= scannedEmptyRatio ||
		float64(low)/float64(n) >= scannedLowTextRatio
}

// computeStats derives aggregate counts from the final pages. Always a pure
// recomputation, never accumulated during the fallback pass.
func computeStats(pages []Page) Stats {
	s := Stats{PageCount: len(pages)}
	for _, p := range pages {
		s.TotalChars += p.CharCount
		if p.CharCount == 0 {
			s.EmptyPageCount++
		}
	}
	return s
}
