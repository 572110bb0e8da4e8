package aggregate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// openDataset открывает CSV и читает строку заголовка.
// csv.Reader дальше сам валидирует постоянство числа полей.
func openDataset(path string) (*os.File, *csv.Reader, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open dataset: %w", err)
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		f.Close()
		return nil, nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyDataset)
	}
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	return f, r, header, nil
}

// columnIndex возвращает позицию столбца name в заголовке.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
}
