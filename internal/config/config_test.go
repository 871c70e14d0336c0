package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "course-docs")
	t.Setenv("R2_PDF_PREFIX", "docs/")
	t.Setenv("R2_EXTRACT_PREFIX", "extracted/")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MIN_TEXT_CHARS_PER_PAGE", "")
	t.Setenv("OCR_DPI", "")
	t.Setenv("OCR_LANG", "")
	t.Setenv("OCR_ENGINE", "")
	t.Setenv("LANGUAGE_HINT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MinTextCharsPerPage)
	assert.Equal(t, 250, cfg.OCRDPI)
	assert.Equal(t, "eng", cfg.OCRLang)
	assert.Equal(t, EngineTesseract, cfg.OCREngine)
	assert.Equal(t, "en", cfg.LanguageHint)
	assert.Equal(t, "course-docs", cfg.Bucket)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("R2_BUCKET_NAME", "")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "R2_BUCKET_NAME")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MIN_TEXT_CHARS_PER_PAGE", "50")
	t.Setenv("OCR_DPI", "300")
	t.Setenv("OCR_LANG", "deu")
	t.Setenv("OCR_ENGINE", "vision")
	t.Setenv("LANGUAGE_HINT", "de")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MinTextCharsPerPage)
	assert.Equal(t, 300, cfg.OCRDPI)
	assert.Equal(t, "deu", cfg.OCRLang)
	assert.Equal(t, EngineVision, cfg.OCREngine)
	assert.Equal(t, "de", cfg.LanguageHint)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-integer threshold", key: "MIN_TEXT_CHARS_PER_PAGE", value: "lots"},
		{name: "negative threshold", key: "MIN_TEXT_CHARS_PER_PAGE", value: "-1"},
		{name: "zero dpi", key: "OCR_DPI", value: "0"},
		{name: "unknown engine", key: "OCR_ENGINE", value: "abbyy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
