package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"pdfextract/internal/extract"
)

// Tesseract runs local OCR over rendered page images using the gosseract
// Tesseract bindings. It is the default engine.
type Tesseract struct {
	dpi  int
	lang string

	// A fresh client per call keeps Tesseract state from leaking between
	// pages; the factory is replaceable for tests.
	clientFactory func() *gosseract.Client
}

// NewTesseract creates a Tesseract-backed page OCR engine. lang is a
// Tesseract language identifier such as "eng".
func NewTesseract(dpi int, lang string) *Tesseract {
	return &Tesseract{
		dpi:           dpi,
		lang:          lang,
		clientFactory: gosseract.NewClient,
	}
}

// RecognizePage renders the zero-based page at the configured DPI and OCRs
// it. The returned text is normalized the same way native extraction is.
func (t *Tesseract) RecognizePage(ctx context.Context, pdfBytes []byte, pageIndex int) (string, error) {
	const op = "RecognizePage"

	if err := ctx.Err(); err != nil {
		return "", newPageError(op, pageIndex, err)
	}

	img, err := renderPagePNG(pdfBytes, pageIndex, t.dpi)
	if err != nil {
		return "", newPageError(op, pageIndex, err)
	}

	client := t.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(t.lang); err != nil {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: set language %q: %v", ErrRecognitionFailed, t.lang, err))
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: set image: %v", ErrRecognitionFailed, err))
	}

	text, err := client.Text()
	if err != nil {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: %v", ErrRecognitionFailed, err))
	}

	return extract.NormalizeText(text), nil
}
