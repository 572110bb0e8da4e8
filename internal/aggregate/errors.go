package aggregate

import "errors"

// Ошибки формата датасета. Все фатальны — retry не исправит данные.
var (
	// ErrEmptyDataset — файл не содержит даже строки заголовка.
	ErrEmptyDataset = errors.New("dataset has no header row")

	// ErrMissingColumn — в заголовке нет обязательного столбца.
	ErrMissingColumn = errors.New("required column missing")

	// ErrBadNumeric — числовое поле не парсится.
	ErrBadNumeric = errors.New("numeric field not parseable")
)
