package domain

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED
type RunStatus string

const (
	// RunStatusPending — run создан, но ещё не начал выполняться.
	RunStatusPending RunStatus = "PENDING"

	// RunStatusRunning — run в процессе выполнения.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — run успешно завершён, строка записана в БД.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — run завершился с ошибкой на одном из этапов.
	RunStatusFailed RunStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный (run завершён).
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}

// Stage — этап конвейера, на котором находится run.
//
// Этапы выполняются строго последовательно:
//
//	CHECK_PRESENCE → {FETCH_REMOTE | SKIP_FETCH} → AGGREGATE_GENERAL
//	→ AGGREGATE_LOANS → ENSURE_SCHEMA → APPEND_ROW
type Stage string

const (
	// StageCheckPresence — проверка наличия файла датасета на диске.
	StageCheckPresence Stage = "CHECK_PRESENCE"

	// StageFetchRemote — загрузка датасета из object storage.
	StageFetchRemote Stage = "FETCH_REMOTE"

	// StageAggregateGeneral — подсчёт числа строк и столбцов.
	StageAggregateGeneral Stage = "AGGREGATE_GENERAL"

	// StageAggregateLoans — подсчёт средних loan_amount по грейдам.
	StageAggregateLoans Stage = "AGGREGATE_LOANS"

	// StageEnsureSchema — создание таблицы агрегатов, если её нет.
	StageEnsureSchema Stage = "ENSURE_SCHEMA"

	// StageAppendRow — вставка одной строки с агрегатами.
	StageAppendRow Stage = "APPEND_ROW"
)

// FailureKind — категория ошибки, с которой завершился run.
//
// Позволяет оператору отличить «не смогли получить данные»
// от «посчитали, но не смогли сохранить» без чтения логов.
type FailureKind string

const (
	// FailureNone — run не завершался с ошибкой.
	FailureNone FailureKind = ""

	// FailureConfig — некорректная конфигурация (путь, бакет, DSN).
	// Retry бесполезен.
	FailureConfig FailureKind = "CONFIG"

	// FailureFetch — не удалось получить датасет: ошибка файловой
	// системы или загрузки из object storage.
	FailureFetch FailureKind = "FETCH"

	// FailureData — датасет нечитаем или не соответствует ожидаемой
	// табличной схеме. Retry бесполезен — данные не исправятся.
	FailureData FailureKind = "DATA"

	// FailurePersistence — ошибка создания таблицы или вставки строки.
	FailurePersistence FailureKind = "PERSISTENCE"
)
