package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePageOCR returns canned text or errors per zero-based page index and
// records every invocation.
type fakePageOCR struct {
	texts map[int]string
	errs  map[int]error
	calls []int
}

func (f *fakePageOCR) RecognizePage(_ context.Context, _ []byte, pageIndex int) (string, error) {
	f.calls = append(f.calls, pageIndex)
	if err := f.errs[pageIndex]; err != nil {
		return "", err
	}
	return f.texts[pageIndex], nil
}

// newTestEngine builds an Engine whose native pass yields the given page
// texts in order.
func newTestEngine(ocr PageOCR, minChars int, nativeTexts ...string) *Engine {
	e := NewEngine(ocr, minChars)
	e.native = func([]byte) ([]Page, error) {
		pages := make([]Page, 0, len(nativeTexts))
		for i, text := range nativeTexts {
			pages = append(pages, NewPage(i+1, text))
		}
		return pages, nil
	}
	return e
}

func TestThresholdBoundary(t *testing.T) {
	// A page exactly at the threshold is never OCR'd; one below it is.
	atThreshold := strings.Repeat("a", 30)
	belowThreshold := strings.Repeat("b", 29)

	ocr := &fakePageOCR{texts: map[int]string{1: strings.Repeat("c", 100)}}
	e := newTestEngine(ocr, 30, atThreshold, belowThreshold)

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	assert.Equal(t, []int{1}, ocr.calls)
	assert.Equal(t, atThreshold, result.Pages[0].Text)
	assert.Equal(t, strings.Repeat("c", 100), result.Pages[1].Text)
}

func TestMergeMonotonicity(t *testing.T) {
	native := "short"

	tests := []struct {
		name     string
		ocrText  string
		wantText string
	}{
		{name: "strictly longer replaces", ocrText: "a much longer recognized text", wantText: "a much longer recognized text"},
		{name: "equal length keeps native", ocrText: "12345", wantText: native},
		{name: "shorter keeps native", ocrText: "abc", wantText: native},
		{name: "empty keeps native", ocrText: "", wantText: native},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ocr := &fakePageOCR{texts: map[int]string{0: tt.ocrText}}
			e := newTestEngine(ocr, 30, native)

			result, err := e.Extract(context.Background(), []byte("pdf"))
			require.NoError(t, err)
			require.Len(t, result.Pages, 1)

			assert.Equal(t, tt.wantText, result.Pages[0].Text)
			assert.Equal(t, len(tt.wantText), result.Pages[0].CharCount)
		})
	}
}

func TestScannedClassification(t *testing.T) {
	longText := strings.Repeat("x", 100)

	tests := []struct {
		name  string
		texts []string
		want  bool
	}{
		{
			// 6 of 10 pages empty crosses the 0.5 empty ratio even though
			// the other pages are well above the OCR threshold.
			name:  "mostly empty pages",
			texts: []string{"", "", "", "", "", "", longText, longText, longText, longText},
			want:  true,
		},
		{
			// Nothing empty, but every page is below the threshold: the 0.8
			// low-text ratio fires.
			name:  "all pages low text",
			texts: []string{"abc", "de", "fgh", "ij", "klm"},
			want:  true,
		},
		{
			name:  "healthy text-layer document",
			texts: []string{longText, longText, longText},
			want:  false,
		},
		{
			// 4 of 10 empty: below both ratios.
			name:  "some empty pages",
			texts: []string{"", "", "", "", longText, longText, longText, longText, longText, longText},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(&fakePageOCR{}, 30, tt.texts...)
			result, err := e.Extract(context.Background(), []byte("pdf"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ScannedSuspected)
		})
	}
}

func TestOCRFailureIsolation(t *testing.T) {
	// Page 2's OCR blows up; pages 1 and 3 are still recovered and the
	// document completes with consistent stats.
	recovered := strings.Repeat("r", 50)
	ocr := &fakePageOCR{
		texts: map[int]string{0: recovered, 2: recovered},
		errs:  map[int]error{1: errors.New("tesseract crashed")},
	}
	e := newTestEngine(ocr, 30, "", "", "")

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	require.Len(t, result.Pages, 3)

	assert.Equal(t, []int{0, 1, 2}, ocr.calls)
	assert.Equal(t, recovered, result.Pages[0].Text)
	assert.Equal(t, "", result.Pages[1].Text, "failed page keeps its native text")
	assert.Equal(t, recovered, result.Pages[2].Text)

	assert.Equal(t, Stats{PageCount: 3, TotalChars: 100, EmptyPageCount: 1}, result.Stats)
}

func TestAllOCRFailuresDegradeToNative(t *testing.T) {
	boom := errors.New("no tesseract installed")
	ocr := &fakePageOCR{errs: map[int]error{0: boom, 1: boom}}
	e := newTestEngine(ocr, 30, "tiny", "")

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	assert.Equal(t, "tiny", result.Pages[0].Text)
	assert.Equal(t, "", result.Pages[1].Text)
	assert.Equal(t, Stats{PageCount: 2, TotalChars: 4, EmptyPageCount: 1}, result.Stats)
}

func TestZeroThresholdDisablesOCR(t *testing.T) {
	ocr := &fakePageOCR{}
	e := newTestEngine(ocr, 0, "", "", "")

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	assert.Empty(t, ocr.calls, "no char count can be below 0")
	// Every page is empty, so the document still classifies as scanned.
	assert.True(t, result.ScannedSuspected)
}

func TestZeroPageDocument(t *testing.T) {
	ocr := &fakePageOCR{}
	e := newTestEngine(ocr, 30)

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	assert.Empty(t, result.Pages)
	assert.False(t, result.ScannedSuspected)
	assert.Equal(t, Stats{}, result.Stats)
	assert.Empty(t, ocr.calls)
}

func TestStatsRecomputedFromFinalPages(t *testing.T) {
	ocr := &fakePageOCR{texts: map[int]string{0: strings.Repeat("o", 40)}}
	e := newTestEngine(ocr, 30, "abc", strings.Repeat("n", 60), "")

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	var total, empty int
	for _, p := range result.Pages {
		assert.Equal(t, charCount(p.Text), p.CharCount)
		total += p.CharCount
		if p.CharCount == 0 {
			empty++
		}
	}
	assert.Equal(t, len(result.Pages), result.Stats.PageCount)
	assert.Equal(t, total, result.Stats.TotalChars)
	assert.Equal(t, empty, result.Stats.EmptyPageCount)
}

func TestNativeFailurePropagates(t *testing.T) {
	e := NewEngine(&fakePageOCR{}, 30)
	e.native = func([]byte) ([]Page, error) {
		return nil, ErrInvalidDocument
	}

	result, err := e.Extract(context.Background(), []byte("pdf"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Nil(t, result)
}

func TestPageNumbersAreOneBasedAndOrdered(t *testing.T) {
	e := newTestEngine(&fakePageOCR{}, 0, "a", "b", "c")

	result, err := e.Extract(context.Background(), []byte("pdf"))
	require.NoError(t, err)

	for i, p := range result.Pages {
		assert.Equal(t, i+1, p.Number)
	}
}
