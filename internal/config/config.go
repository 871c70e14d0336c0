// Package config loads the process configuration from the environment.
//
// Configuration is resolved once at startup into an explicit Config value;
// no other package reads environment variables for pipeline settings.
package config

import (
	"fmt"
	"os"
	"strconv"

	"pdfextract/internal/logger"
)

// OCR engine identifiers accepted in OCR_ENGINE.
const (
	EngineTesseract = "tesseract"
	EngineVision    = "vision"
)

type Config struct {
	// Cloudflare R2 (S3-compatible) storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	Bucket            string
	PDFPrefix         string
	OutPrefix         string

	// Extraction tuning
	MinTextCharsPerPage int
	OCRDPI              int
	OCRLang             string
	OCREngine           string
	LanguageHint        string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	minChars, err := getEnvInt("MIN_TEXT_CHARS_PER_PAGE", 30)
	if err != nil {
		return nil, err
	}
	dpi, err := getEnvInt("OCR_DPI", 250)
	if err != nil {
		return nil, err
	}

	config := &Config{
		R2AccountID:         os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:       os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:   os.Getenv("R2_SECRET_ACCESS_KEY"),
		Bucket:              os.Getenv("R2_BUCKET_NAME"),
		PDFPrefix:           os.Getenv("R2_PDF_PREFIX"),
		OutPrefix:           os.Getenv("R2_EXTRACT_PREFIX"),
		MinTextCharsPerPage: minChars,
		OCRDPI:              dpi,
		OCRLang:             getEnv("OCR_LANG", "eng"),
		OCREngine:           getEnv("OCR_ENGINE", EngineTesseract),
		LanguageHint:        getEnv("LANGUAGE_HINT", "en"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:       getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:           getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	required := []struct {
		name, value string
	}{
		{"R2_ACCOUNT_ID", c.R2AccountID},
		{"R2_ACCESS_KEY_ID", c.R2AccessKeyID},
		{"R2_SECRET_ACCESS_KEY", c.R2SecretAccessKey},
		{"R2_BUCKET_NAME", c.Bucket},
		{"R2_PDF_PREFIX", c.PDFPrefix},
		{"R2_EXTRACT_PREFIX", c.OutPrefix},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if c.OCREngine != EngineTesseract && c.OCREngine != EngineVision {
		return fmt.Errorf("OCR_ENGINE must be %q or %q, got %q", EngineTesseract, EngineVision, c.OCREngine)
	}
	if c.MinTextCharsPerPage < 0 {
		return fmt.Errorf("MIN_TEXT_CHARS_PER_PAGE must be >= 0, got %d", c.MinTextCharsPerPage)
	}
	if c.OCRDPI <= 0 {
		return fmt.Errorf("OCR_DPI must be > 0, got %d", c.OCRDPI)
	}
	return nil
}

// LoggerConfig returns the logging subset of the configuration.
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
}
