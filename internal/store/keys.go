package store

import (
	"path"
	"strings"
)

// Basename returns the key's filename component without its extension.
func Basename(key string) string {
	base := path.Base(key)
	return strings.TrimSuffix(base, path.Ext(base))
}

// OutputKey derives the artifact key for a PDF key: the output prefix
// (with exactly one trailing separator) plus the PDF's basename with a
// .json extension.
func OutputKey(outPrefix, pdfKey string) string {
	if !strings.HasSuffix(outPrefix, "/") {
		outPrefix += "/"
	}
	return outPrefix + Basename(pdfKey) + ".json"
}

func hasExt(key, ext string) bool {
	return strings.EqualFold(path.Ext(key), ext)
}

// isPending reports whether key is a PDF with no artifact basename in
// extracted.
func isPending(key string, extracted map[string]struct{}) bool {
	if !hasExt(key, ".pdf") {
		return false
	}
	_, done := extracted[Basename(key)]
	return !done
}
