package extract

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidDocument is returned when the byte buffer is not a parseable
// PDF. It is fatal for the whole document.
var ErrInvalidDocument = errors.New("invalid or corrupted PDF document")

// ExtractNative extracts text from the document's embedded text layer, one
// entry per page in physical order. Pages without a text layer yield an
// empty string. No rendering or OCR is involved.
func ExtractNative(pdfBytes []byte) (pages []Page, err error) {
	// The parser panics on some malformed inputs; treat that the same as a
	// parse error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: parser panic: %v", ErrInvalidDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	numPages := reader.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages = make([]Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		var text string
		if !p.V.IsNull() {
			for _, name := range p.Fonts() {
				if _, ok := fonts[name]; !ok {
					f := p.Font(name)
					fonts[name] = &f
				}
			}
			raw, pageErr := p.GetPlainText(fonts)
			if pageErr != nil {
				return nil, fmt.Errorf("%w: page %d: %v", ErrInvalidDocument, i, pageErr)
			}
			text = NormalizeText(raw)
		}
		pages = append(pages, NewPage(i, text))
	}

	return pages, nil
}
