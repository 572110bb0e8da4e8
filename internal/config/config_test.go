package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// resetEnv очищает переменные конвейера, которые могут быть
// заданы во внешнем окружении. Пустое значение для envOr
// эквивалентно отсутствию переменной.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATASET_DIR", "DATASET_FILE",
		"S3_BUCKET", "S3_KEY", "AWS_REGION",
		"DB_URL", "FETCH_TIMEOUT", "DB_TIMEOUT",
		"CRON_EXPR", "HTTP_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatasetFile != "loan_data_small.csv" {
		t.Errorf("unexpected dataset file: %s", cfg.DatasetFile)
	}
	if cfg.FetchTimeout != 60*time.Second {
		t.Errorf("expected 60s fetch timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.CronExpr != "@daily" {
		t.Errorf("expected @daily, got %s", cfg.CronExpr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	resetEnv(t)
	t.Setenv("DATASET_DIR", "/tmp/data")
	t.Setenv("DATASET_FILE", "loans.csv")
	t.Setenv("S3_KEY", "raw/loans.csv")
	t.Setenv("FETCH_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.DatasetPath(); got != filepath.Join("/tmp/data", "loans.csv") {
		t.Errorf("unexpected dataset path: %s", got)
	}
	// Базовое имя ключа определяет имя скачанного файла
	if got := cfg.FetchedPath(); got != filepath.Join("/tmp/data", "loans.csv") {
		t.Errorf("unexpected fetched path: %s", got)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.FetchTimeout)
	}
}

func TestLoad_BadDuration(t *testing.T) {
	resetEnv(t)
	t.Setenv("DB_TIMEOUT", "soon")

	_, err := Load()
	if !errors.Is(err, ErrBadDuration) {
		t.Fatalf("expected ErrBadDuration, got %v", err)
	}
}

func TestLoad_KeyMismatch(t *testing.T) {
	resetEnv(t)
	t.Setenv("DATASET_FILE", "loan_data_small.csv")
	t.Setenv("S3_KEY", "data/raw-data/loans_2026.csv")

	_, err := Load()
	if !errors.Is(err, ErrKeyMismatch) {
		t.Fatalf("expected ErrKeyMismatch, got %v", err)
	}
}

func TestValidate_MissingBucket(t *testing.T) {
	cfg := &Config{S3Key: "k", DatabaseURL: "d"}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingBucket) {
		t.Fatalf("expected ErrMissingBucket, got %v", err)
	}
}
