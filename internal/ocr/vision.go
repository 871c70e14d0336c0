package ocr

import (
	"context"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"pdfextract/internal/extract"
)

// Vision runs OCR over rendered page images through the Google Cloud Vision
// API. Selected with OCR_ENGINE=vision for corpora where Tesseract quality
// is not good enough.
type Vision struct {
	client       *vision.ImageAnnotatorClient
	dpi          int
	languageHint string
}

// NewVision creates a Vision-backed page OCR engine with credentials from
// the environment: GOOGLE_CREDENTIALS (inline JSON), then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then the default chain.
// languageHint is a BCP-47 tag such as "en"; empty means auto-detect.
func NewVision(ctx context.Context, dpi int, languageHint string) (*Vision, error) {
	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("creating Vision client: %w", err)
	}

	return &Vision{client: client, dpi: dpi, languageHint: languageHint}, nil
}

// RecognizePage renders the zero-based page at the configured DPI and sends
// it for document text detection. The returned text is normalized the same
// way native extraction is.
func (v *Vision) RecognizePage(ctx context.Context, pdfBytes []byte, pageIndex int) (string, error) {
	const op = "RecognizePage"

	img, err := renderPagePNG(pdfBytes, pageIndex, v.dpi)
	if err != nil {
		return "", newPageError(op, pageIndex, err)
	}

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: img},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}
	if v.languageHint != "" {
		req.ImageContext = &visionpb.ImageContext{LanguageHints: []string{v.languageHint}}
	}

	resp, err := v.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: Vision API call failed: %v", ErrRecognitionFailed, err))
	}
	if len(resp.Responses) == 0 {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: no response from Vision API", ErrRecognitionFailed))
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return "", newPageError(op, pageIndex, fmt.Errorf("%w: Vision API error: %s", ErrRecognitionFailed, annotated.Error.Message))
	}
	if annotated.FullTextAnnotation == nil {
		return "", nil
	}

	return extract.NormalizeText(annotated.FullTextAnnotation.Text), nil
}

// Close releases the underlying API client.
func (v *Vision) Close() error {
	return v.client.Close()
}
