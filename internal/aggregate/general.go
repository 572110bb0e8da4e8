package aggregate

import (
	"errors"
	"fmt"
	"io"
)

// Counts считает число строк данных и объявленных столбцов датасета.
//
// Строка заголовка в rows не входит; cols — число полей заголовка.
// Нечитаемый или непарсящийся файл — фатальная ошибка, никаких
// «нулей по умолчанию».
func Counts(path string) (rows, cols int64, err error) {
	f, r, header, err := openDataset(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cols = int64(len(header))
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, cols, nil
		}
		if err != nil {
			return 0, 0, fmt.Errorf("read record %d: %w", rows+1, err)
		}
		rows++
	}
}
