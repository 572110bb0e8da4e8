package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDatasetExists_Present(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loan_data_small.csv")
	if err := os.WriteFile(path, []byte("grade,loan_amount\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	exists, err := DatasetExists(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected file to be reported as present")
	}
}

func TestDatasetExists_Absent(t *testing.T) {
	exists, err := DatasetExists(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected file to be reported as absent")
	}
}

func TestDatasetExists_StatError(t *testing.T) {
	// Путь «сквозь» обычный файл: stat даёт ENOTDIR, не ErrNotExist.
	// Такая ошибка фатальна и не маскируется под «файла нет».
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	exists, err := DatasetExists(filepath.Join(file, "loan_data_small.csv"))
	if err == nil {
		t.Fatal("expected stat error, got nil")
	}
	if exists {
		t.Error("stat error must not be reported as present")
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()

	dest, err := writeAtomic(dir, "loans.csv", strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest != filepath.Join(dir, "loans.csv") {
		t.Errorf("unexpected dest path: %s", dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("unexpected content: %q", data)
	}

	// Временные файлы не должны оставаться рядом с датасетом
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the dataset in dir, got %d entries", len(entries))
	}
}

func TestWriteAtomic_Overwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loans.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := writeAtomic(dir, "loans.csv", strings.NewReader("new")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("expected overwrite, got %q", data)
	}
}
