package extract

import "unicode/utf8"

// Page is the extraction result for a single page. CharCount is always
// derived from Text; construct pages with NewPage so the two cannot drift.
type Page struct {
	Number    int    `json:"page"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

// NewPage builds a Page for the given 1-based page number.
func NewPage(number int, text string) Page {
	return Page{Number: number, Text: text, CharCount: charCount(text)}
}

// Stats are aggregate counts over a document's final pages.
type Stats struct {
	PageCount      int `json:"page_count"`
	TotalChars     int `json:"total_chars"`
	EmptyPageCount int `json:"empty_page_count"`
}

// Result is the outcome of extracting one document.
type Result struct {
	Pages            []Page
	ScannedSuspected bool
	Stats            Stats
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
