package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DatasetExists проверяет наличие файла датасета по ожидаемому пути.
//
// Ошибка stat, отличная от «файла нет» (например, permission denied),
// возвращается как есть: её нельзя маскировать под «файл отсутствует»,
// иначе конвейер пойдёт скачивать данные, которые уже есть.
func DatasetExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat dataset %s: %w", path, err)
}

// writeAtomic записывает содержимое r в dir/name через временный файл
// в той же директории и rename. Читатели никогда не видят частично
// записанный датасет; существующий файл перезаписывается целиком.
func writeAtomic(dir, name string, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("rename to %s: %w", dest, err)
	}
	return dest, nil
}
