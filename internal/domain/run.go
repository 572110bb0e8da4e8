package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run — один сквозной прогон ETL-конвейера.
//
// Run создаётся когда:
// - Оператор запускает конвейер вручную (loanpipe run)
// - Scheduler запускает конвейер по расписанию (обычно раз в сутки)
//
// Run живёт в памяти процесса: единственный персистентный результат
// прогона — строка агрегатов в таблице (см. RunSummary).
type Run struct {
	// ID — уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Stage — этап конвейера, достигнутый последним.
	// Для FAILED — этап, на котором произошла ошибка.
	Stage Stage `json:"stage,omitempty"`

	// FailureKind — категория ошибки, если run завершился с FAILED.
	FailureKind FailureKind `json:"failure_kind,omitempty"`

	// Error — текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// StartedAt — время начала выполнения (когда статус стал RUNNING).
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения (успешного или с ошибкой).
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// CreatedAt — время создания run.
	CreatedAt time.Time `json:"created_at"`
}

// NewRun создаёт run в статусе PENDING.
func NewRun(now time.Time) *Run {
	return &Run{
		ID:        uuid.New(),
		Status:    RunStatusPending,
		CreatedAt: now,
	}
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// IsFinished возвращает true, если run завершён (в любом статусе).
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning(now time.Time) {
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *Run) MarkSucceeded(now time.Time) {
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
	r.FailureKind = FailureNone
}

// MarkFailed переводит run в статус FAILED с категорией и текстом ошибки.
// Этап, на котором произошла ошибка, остаётся в r.Stage —
// конвейер выставляет его перед каждым шагом.
func (r *Run) MarkFailed(now time.Time, kind FailureKind, err error) {
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	r.FailureKind = kind
	if err != nil {
		r.Error = err.Error()
	}
}
