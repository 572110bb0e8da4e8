package pipeline

import "errors"

// Ошибки конфигурации конвейера.
var (
	// ErrNoFetcher — файла нет локально, а fetcher не сконфигурирован.
	ErrNoFetcher = errors.New("dataset is absent and no fetcher is configured")

	// ErrNoStore — не сконфигурировано хранилище агрегатов.
	ErrNoStore = errors.New("summary store is not configured")
)
