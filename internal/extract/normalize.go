package extract

import "strings"

// NormalizeText strips trailing whitespace from every line and trims
// leading/trailing whitespace from the whole result. Native extraction and
// OCR both normalize through this function, so their character counts are
// comparable.
func NormalizeText(t string) string {
	if t == "" {
		return ""
	}
	lines := strings.Split(t, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r\f\v")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
