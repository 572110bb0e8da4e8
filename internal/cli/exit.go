package cli

import "github.com/shaiso/loanpipe/internal/domain"

// Коды завершения процесса по категории ошибки.
const (
	ExitFailure     = 1 // неклассифицированная ошибка
	ExitConfig      = 2
	ExitFetch       = 3
	ExitData        = 4
	ExitPersistence = 5
)

// ExitError — ошибка с кодом завершения процесса.
type ExitError struct {
	Code int
	Err  error
}

// Error реализует интерфейс error.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap возвращает базовую ошибку.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor возвращает код завершения для категории ошибки run'а.
func ExitCodeFor(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureConfig:
		return ExitConfig
	case domain.FailureFetch:
		return ExitFetch
	case domain.FailureData:
		return ExitData
	case domain.FailurePersistence:
		return ExitPersistence
	default:
		return ExitFailure
	}
}
