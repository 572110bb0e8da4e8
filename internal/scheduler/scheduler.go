package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/shaiso/loanpipe/internal/pipeline"
)

// runLockKey — ключ pg advisory lock, сериализующего прогоны
// между процессами, пишущими в одну таблицу агрегатов.
const runLockKey int64 = 522023

// runLocker сериализует прогоны между процессами.
type runLocker interface {
	// acquire пытается взять лок. ok=false — лок держит другой
	// процесс. release обязателен к вызову при ok=true.
	acquire(ctx context.Context) (release func(), ok bool, err error)
}

// advisoryLocker — runLocker на session-level pg advisory lock.
//
// Lock и unlock выполняются на одном выделенном соединении:
// session-level лок принадлежит соединению, взявшему его, и unlock
// на другом соединении пула молча не срабатывает — лок остался бы
// висеть на простаивающем соединении, и все следующие тики
// пропускались бы.
type advisoryLocker struct {
	pool *pgxpool.Pool
}

func (l *advisoryLocker) acquire(ctx context.Context) (func(), bool, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire conn: %w", err)
	}

	var ok bool
	if err := conn.QueryRow(ctx, "select pg_try_advisory_lock($1)", runLockKey).Scan(&ok); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !ok {
		conn.Release()
		return nil, false, nil
	}

	release := func() {
		_, _ = conn.Exec(context.Background(), "select pg_advisory_unlock($1)", runLockKey)
		conn.Release()
	}
	return release, true, nil
}

// Scheduler запускает конвейер по cron-расписанию.
type Scheduler struct {
	pipeline *pipeline.Pipeline
	locker   runLocker
	logger   *slog.Logger
	cronExpr string
	cron     *cron.Cron
	running  atomic.Bool
}

// Config — конфигурация Scheduler.
type Config struct {
	Pipeline *pipeline.Pipeline
	Pool     *pgxpool.Pool // для advisory lock; nil — один процесс, лок не нужен
	CronExpr string        // например "@daily"
	Logger   *slog.Logger
}

// New создаёт Scheduler и валидирует расписание.
func New(cfg Config) (*Scheduler, error) {
	if err := ValidateCronExpr(cfg.CronExpr); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var locker runLocker
	if cfg.Pool != nil {
		locker = &advisoryLocker{pool: cfg.Pool}
	}

	return &Scheduler{
		pipeline: cfg.Pipeline,
		locker:   locker,
		logger:   logger,
		cronExpr: cfg.CronExpr,
		cron:     cron.New(cron.WithParser(cronParser)),
	}, nil
}

// Start регистрирует расписание и запускает cron-таймер.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cronExpr, func() { s.runOnce(ctx) }); err != nil {
		return err
	}
	s.cron.Start()

	if next, err := NextAfter(s.cronExpr, time.Now()); err == nil {
		s.logger.Info("scheduler started", "cron", s.cronExpr, "next_run", next)
	}
	return nil
}

// Stop останавливает cron-таймер и дожидается завершения
// уже начатого прогона.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// runOnce выполняет один прогон, если предыдущий уже завершился
// и удалось взять лок.
func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous run still in progress, skipping tick")
		return
	}
	defer s.running.Store(false)

	if s.locker != nil {
		release, ok, err := s.locker.acquire(ctx)
		if err != nil {
			s.logger.Error("advisory lock failed", "error", err)
			return
		}
		if !ok {
			s.logger.Warn("another process holds the run lock, skipping tick")
			return
		}
		defer release()
	}

	run, err := s.pipeline.Execute(ctx)
	if err != nil {
		s.logger.Error("scheduled run failed",
			"run_id", run.ID,
			"stage", run.Stage,
			"failure_kind", run.FailureKind,
			"error", err,
		)
		return
	}
	s.logger.Info("scheduled run succeeded", "run_id", run.ID, "duration", run.Duration())
}
