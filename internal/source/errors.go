package source

import "errors"

// Ошибки получения датасета.
var (
	// ErrObjectNotFound — объект отсутствует в бакете.
	// Retry бесполезен: повторная попытка не создаст объект.
	ErrObjectNotFound = errors.New("remote object not found")
)
