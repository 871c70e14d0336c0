// Package ocr recovers text from rasterized PDF pages.
//
// Each engine renders exactly one page to a bitmap at a configured DPI and
// runs optical character recognition over it. Engines implement the
// extract.PageOCR interface; failures are reported as *PageError and are
// never fatal for the rest of the document.
package ocr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// renderPagePNG rasterizes one zero-based page to a PNG at the given DPI.
// MuPDF applies the dpi/72 scale from PDF page space and produces an 8-bit
// RGBA bitmap. The document handle is released on every exit path.
func renderPagePNG(pdfBytes []byte, pageIndex int, dpi int) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, fmt.Errorf("%w: page index %d out of range [0,%d)", ErrRenderFailed, pageIndex, doc.NumPage())
	}

	img, err := doc.ImageDPI(pageIndex, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encoding page image: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
