package schema

import (
	"path"
	"strings"
	"time"

	"pdfextract/internal/extract"
	"pdfextract/internal/store"
)

// SchemaVersion identifies the persisted artifact format.
const SchemaVersion = 1

// Output is the JSON artifact written per document.
type Output struct {
	SchemaVersion int            `json:"schema_version"`
	Doc           DocInfo        `json:"doc"`
	Extraction    Extraction     `json:"extraction"`
	Pages         []extract.Page `json:"pages"`
}

// DocInfo combines parsed document metadata with storage provenance.
type DocInfo struct {
	DocID    string  `json:"doc_id"`
	Title    string  `json:"title"`
	Source   string  `json:"source"`
	Course   *string `json:"course"`
	DocType  string  `json:"doc_type"`
	Sequence *int    `json:"sequence"`
	PDF      PDFInfo `json:"pdf"`
}

// PDFInfo is the source object's storage provenance.
type PDFInfo struct {
	R2Bucket    string  `json:"r2_bucket"`
	R2Key       string  `json:"r2_key"`
	ContentType string  `json:"content_type"`
	SizeBytes   *int64  `json:"size_bytes"`
	ETag        *string `json:"etag"`
	UploadedAt  *string `json:"uploaded_at"`
}

// Extraction describes how and when the text was extracted.
type Extraction struct {
	ExtractedAt      string        `json:"extracted_at"`
	Method           string        `json:"method"`
	MethodVersion    string        `json:"method_version"`
	LanguageHint     string        `json:"language_hint"`
	ScannedSuspected bool          `json:"scanned_suspected"`
	Stats            extract.Stats `json:"stats"`
}

// BuildOutput assembles the artifact for one document. head may be nil when
// the store returned no metadata; its fields map to JSON nulls.
func BuildOutput(
	bucket, pdfKey string,
	head *store.ObjectInfo,
	extractedAt time.Time,
	method, methodVersion, languageHint string,
	result *extract.Result,
) Output {
	meta := ParseDocMeta(path.Base(pdfKey))

	pdfInfo := PDFInfo{
		R2Bucket:    bucket,
		R2Key:       pdfKey,
		ContentType: "application/pdf",
	}
	if head != nil {
		if head.ContentType != nil && *head.ContentType != "" {
			pdfInfo.ContentType = *head.ContentType
		}
		pdfInfo.SizeBytes = head.SizeBytes
		if head.ETag != nil {
			if etag := strings.Trim(*head.ETag, `"`); etag != "" {
				pdfInfo.ETag = &etag
			}
		}
		if head.LastModified != nil {
			uploaded := IsoZ(*head.LastModified)
			pdfInfo.UploadedAt = &uploaded
		}
	}

	return Output{
		SchemaVersion: SchemaVersion,
		Doc: DocInfo{
			DocID:    meta.DocID,
			Title:    meta.Title,
			Source:   meta.Source,
			Course:   meta.Course,
			DocType:  meta.DocType,
			Sequence: meta.Sequence,
			PDF:      pdfInfo,
		},
		Extraction: Extraction{
			ExtractedAt:      IsoZ(extractedAt),
			Method:           method,
			MethodVersion:    methodVersion,
			LanguageHint:     languageHint,
			ScannedSuspected: result.ScannedSuspected,
			Stats:            result.Stats,
		},
		Pages: result.Pages,
	}
}

// IsoZ renders a timestamp as UTC ISO-8601 at second precision with a
// literal Z suffix, never a numeric offset.
func IsoZ(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}
