package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shaiso/loanpipe/internal/aggregate"
	"github.com/shaiso/loanpipe/internal/domain"
	"github.com/shaiso/loanpipe/internal/source"
	"github.com/shaiso/loanpipe/internal/telemetry"
)

// Fetcher скачивает датасет и возвращает локальный путь к файлу.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// SummaryStore — хранилище строк агрегатов.
type SummaryStore interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, s *domain.RunSummary) error
}

// Config — конфигурация Pipeline.
type Config struct {
	// DatasetPath — ожидаемый локальный путь к датасету.
	DatasetPath string

	// Fetcher используется, когда файла нет локально.
	// nil допустим, если датасет гарантированно на диске.
	Fetcher Fetcher

	// Store — куда добавляется строка агрегатов.
	Store SummaryStore

	// Clock — часы writer'а; timestamp строки берётся из них
	// в момент вставки. По умолчанию — реальные часы.
	Clock clockwork.Clock

	// Logger — базовый логгер; на каждый прогон обогащается run_id.
	Logger *slog.Logger

	// DBTimeout — таймаут каждой операции с БД (default: 10s).
	DBTimeout time.Duration
}

// Pipeline — последовательный ETL-конвейер одного датасета.
type Pipeline struct {
	datasetPath string
	fetcher     Fetcher
	store       SummaryStore
	clock       clockwork.Clock
	logger      *slog.Logger
	dbTimeout   time.Duration
}

// New создаёт Pipeline.
func New(cfg Config) *Pipeline {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbTimeout := cfg.DBTimeout
	if dbTimeout <= 0 {
		dbTimeout = 10 * time.Second
	}

	return &Pipeline{
		datasetPath: cfg.DatasetPath,
		fetcher:     cfg.Fetcher,
		store:       cfg.Store,
		clock:       clock,
		logger:      logger,
		dbTimeout:   dbTimeout,
	}
}

// runContext — типизированные промежуточные значения одного прогона.
// Заменяет key-value обмен между шагами внешнего оркестратора.
type runContext struct {
	isLocal     bool
	datasetPath string
	rowCount    int64
	colCount    int64
	means       map[domain.Grade]*float64
}

// Execute выполняет один сквозной прогон.
//
// Возвращает run с финальным статусом и ошибку, если прогон
// завершился с FAILED. Ошибка любого этапа терминальна:
// конвейер никогда не продолжает мимо отсутствующих входов.
func (p *Pipeline) Execute(ctx context.Context) (*domain.Run, error) {
	run := domain.NewRun(p.clock.Now())
	logger := telemetry.WithRunID(p.logger, run.ID.String())

	run.MarkRunning(p.clock.Now())
	logger.Info("run started", "dataset", p.datasetPath)

	if p.store == nil {
		return p.fail(run, logger, domain.FailureConfig, ErrNoStore)
	}

	rc := &runContext{datasetPath: p.datasetPath}

	// 1. CHECK_PRESENCE
	run.Stage = domain.StageCheckPresence
	exists, err := source.DatasetExists(p.datasetPath)
	if err != nil {
		// Ошибка stat — не то же самое, что «файла нет»
		return p.fail(run, logger, domain.FailureFetch, err)
	}
	rc.isLocal = exists

	// 2. Ветвление local/remote: выполняется ровно одна ветка
	if rc.isLocal {
		logger.Info("dataset is present locally, skipping fetch")
	} else {
		run.Stage = domain.StageFetchRemote
		if p.fetcher == nil {
			return p.fail(run, logger, domain.FailureConfig, ErrNoFetcher)
		}

		logger.Info("dataset is absent locally, fetching")
		start := p.clock.Now()
		fetched, err := p.fetcher.Fetch(ctx)
		if err != nil {
			return p.fail(run, logger, domain.FailureFetch, err)
		}
		telemetry.ObserveStage(string(domain.StageFetchRemote), p.clock.Since(start))

		if fetched != p.datasetPath {
			logger.Warn("fetched file path differs from expected dataset path",
				"fetched", fetched, "expected", p.datasetPath)
		}
		rc.datasetPath = fetched
	}

	// 3. AGGREGATE_GENERAL
	run.Stage = domain.StageAggregateGeneral
	start := p.clock.Now()
	rc.rowCount, rc.colCount, err = aggregate.Counts(rc.datasetPath)
	if err != nil {
		return p.fail(run, logger, domain.FailureData, err)
	}
	telemetry.ObserveStage(string(domain.StageAggregateGeneral), p.clock.Since(start))
	telemetry.SetDatasetRows(rc.rowCount)
	logger.Info("general aggregates computed", "nb_lines", rc.rowCount, "nb_cols", rc.colCount)

	// 4. AGGREGATE_LOANS
	run.Stage = domain.StageAggregateLoans
	start = p.clock.Now()
	rc.means, err = aggregate.LoanMeans(rc.datasetPath)
	if err != nil {
		return p.fail(run, logger, domain.FailureData, err)
	}
	telemetry.ObserveStage(string(domain.StageAggregateLoans), p.clock.Since(start))
	logger.Info("loan aggregates computed")

	// 5. ENSURE_SCHEMA
	run.Stage = domain.StageEnsureSchema
	if err := p.withDBTimeout(ctx, p.store.EnsureSchema); err != nil {
		return p.fail(run, logger, domain.FailurePersistence, err)
	}

	// 6. APPEND_ROW: timestamp — часы writer'а в момент вставки
	run.Stage = domain.StageAppendRow
	summary := &domain.RunSummary{
		RowCount:    rc.rowCount,
		ColCount:    rc.colCount,
		DateAndHour: p.clock.Now(),
		MeanLoan:    rc.means,
	}
	err = p.withDBTimeout(ctx, func(ctx context.Context) error {
		return p.store.Append(ctx, summary)
	})
	if err != nil {
		return p.fail(run, logger, domain.FailurePersistence, err)
	}

	run.MarkSucceeded(p.clock.Now())
	telemetry.RecordRun(string(run.Status), string(run.FailureKind))
	logger.Info("run succeeded", "duration", run.Duration())
	return run, nil
}

// fail переводит run в FAILED и учитывает его в метриках.
func (p *Pipeline) fail(run *domain.Run, logger *slog.Logger, kind domain.FailureKind, err error) (*domain.Run, error) {
	run.MarkFailed(p.clock.Now(), kind, err)
	telemetry.RecordRun(string(run.Status), string(kind))
	logger.Error("run failed",
		"stage", run.Stage,
		"failure_kind", kind,
		"error", err,
	)
	return run, err
}

// withDBTimeout выполняет операцию с БД под отдельным таймаутом.
func (p *Pipeline) withDBTimeout(ctx context.Context, op func(context.Context) error) error {
	opCtx, cancel := context.WithTimeout(ctx, p.dbTimeout)
	defer cancel()
	return op(opCtx)
}
