// Package schema maps document naming conventions and extraction results
// into the persisted artifact format.
package schema

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Coursework filenames look like doc_12_cs101_lecture3; everything else
// falls back to a generic document.
var basenamePattern = regexp.MustCompile(`^(doc_\d+)_([a-zA-Z]+\d+)_([A-Za-z]+)(\d+)?$`)

// DocMeta is metadata derived purely from a document's basename.
type DocMeta struct {
	DocID    string
	Course   *string
	DocType  string
	Sequence *int
	Title    string
	Tags     []string
	Source   string
}

// ParseDocMeta derives document metadata from a storage key basename. Any
// extension is stripped first, so both "doc_1_cs101_lecture3" and
// "doc_1_cs101_lecture3.pdf" parse the same way.
func ParseDocMeta(basename string) DocMeta {
	base := strings.TrimSuffix(basename, path.Ext(basename))

	m := basenamePattern.FindStringSubmatch(base)
	if m == nil {
		return DocMeta{
			DocID:   base,
			DocType: "document",
			Title:   strings.ReplaceAll(base, "_", " "),
			Tags:    []string{},
			Source:  "coursework",
		}
	}

	docID, course, kind := m[1], strings.ToLower(m[2]), strings.ToLower(m[3])
	var seq *int
	if m[4] != "" {
		n, _ := strconv.Atoi(m[4])
		seq = &n
	}

	var docType, label string
	switch {
	case strings.Contains(kind, "lecture"):
		docType, label = "lecture", "Lecture"
	case strings.Contains(kind, "assignment"):
		docType, label = "assignment", "Assignment"
	default:
		docType, label = kind, capitalize(kind)
	}

	title := fmt.Sprintf("%s — %s", strings.ToUpper(course), label)
	if seq != nil {
		title = fmt.Sprintf("%s %d", title, *seq)
	}

	return DocMeta{
		DocID:    docID,
		Course:   &course,
		DocType:  docType,
		Sequence: seq,
		Title:    title,
		Tags:     []string{course, docType},
		Source:   "coursework",
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
