package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Translation
	Locale             string
	LocalesDir         string
	StrictTranslations bool

	// Upload limits
	MaxUploadBytes int64
	MaxBatchFiles  int

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set
// in the environment take precedence.
func Load() Config {
	// .env is optional when variables come from the environment.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PLAINTEXT_API_KEY"),

		Locale:             envOr("LOCALE", "en"),
		LocalesDir:         os.Getenv("LOCALES_DIR"),
		StrictTranslations: envBool("STRICT_TRANSLATIONS", false),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxBatchFiles:  envInt("MAX_BATCH_FILES", 20),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxBatchFiles <= 0 {
		cfg.MaxBatchFiles = 20
	}

	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("PLAINTEXT_API_KEY is required")
	}
	if c.LocalesDir != "" {
		info, err := os.Stat(c.LocalesDir)
		if err != nil {
			return fmt.Errorf("LOCALES_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("LOCALES_DIR %q is not a directory", c.LocalesDir)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
