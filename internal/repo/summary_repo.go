package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/loanpipe/internal/domain"
)

// SummaryTable — имя таблицы агрегатов.
//
// В исходном Airflow-DAG вставка шла в aggregats_loans_tabble —
// на одну букву не так, как называлась создаваемая таблица.
// Здесь оба запроса используют имя создаваемой таблицы.
const SummaryTable = "aggregats_loans_table"

// SummaryRepo — репозиторий append-only таблицы агрегатов.
//
// Таблица только растёт: одна строка на прогон, без UPDATE и DELETE.
type SummaryRepo struct {
	pool *pgxpool.Pool
}

// NewSummaryRepo создаёт новый SummaryRepo.
func NewSummaryRepo(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

// EnsureSchema создаёт таблицу агрегатов, если её нет.
// Идемпотентна — безопасно вызывать на каждом прогоне.
func (r *SummaryRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + SummaryTable + ` (
			nb_lines numeric,
			nb_cols numeric,
			date_and_hour timestamp,
			mean_loan_a numeric,
			mean_loan_b numeric,
			mean_loan_c numeric,
			mean_loan_d numeric
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", SummaryTable, err)
	}
	return nil
}

// Append вставляет одну строку агрегатов.
// nil-средние уходят в БД как NULL.
func (r *SummaryRepo) Append(ctx context.Context, s *domain.RunSummary) error {
	query := `
		INSERT INTO ` + SummaryTable + `
			(nb_lines, nb_cols, date_and_hour, mean_loan_a, mean_loan_b, mean_loan_c, mean_loan_d)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		s.RowCount,
		s.ColCount,
		s.DateAndHour,
		s.Mean(domain.GradeA),
		s.Mean(domain.GradeB),
		s.Mean(domain.GradeC),
		s.Mean(domain.GradeD),
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// List возвращает последние строки агрегатов, новые первыми.
func (r *SummaryRepo) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT nb_lines, nb_cols, date_and_hour, mean_loan_a, mean_loan_b, mean_loan_c, mean_loan_d
		FROM ` + SummaryTable + `
		ORDER BY date_and_hour DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RunSummary
	for rows.Next() {
		var s domain.RunSummary
		var nbLines, nbCols float64
		var a, b, c, d *float64

		if err := rows.Scan(&nbLines, &nbCols, &s.DateAndHour, &a, &b, &c, &d); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.RowCount = int64(nbLines)
		s.ColCount = int64(nbCols)

		s.MeanLoan = map[domain.Grade]*float64{
			domain.GradeA: a,
			domain.GradeB: b,
			domain.GradeC: c,
			domain.GradeD: d,
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
