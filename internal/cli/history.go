package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/loanpipe/internal/config"
	"github.com/shaiso/loanpipe/internal/domain"
	"github.com/shaiso/loanpipe/internal/repo"
)

// NewHistoryCmd создаёт команду просмотра таблицы агрегатов.
func NewHistoryCmd(outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent aggregate rows, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := outputFn()

			cfg, err := config.Load()
			if err != nil {
				return &ExitError{Code: ExitConfig, Err: err}
			}

			pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return &ExitError{Code: ExitPersistence, Err: fmt.Errorf("connect db: %w", err)}
			}
			defer pool.Close()

			summaries, err := repo.NewSummaryRepo(pool).List(ctx, limit)
			if err != nil {
				return &ExitError{Code: ExitPersistence, Err: err}
			}

			headers := []string{"DATE", "NB_LINES", "NB_COLS", "MEAN_A", "MEAN_B", "MEAN_C", "MEAN_D"}
			rows := make([][]string, len(summaries))
			for i, s := range summaries {
				rows[i] = []string{
					fmtTime(s.DateAndHour),
					strconv.FormatInt(s.RowCount, 10),
					strconv.FormatInt(s.ColCount, 10),
					fmtMean(s.Mean(domain.GradeA)),
					fmtMean(s.Mean(domain.GradeB)),
					fmtMean(s.Mean(domain.GradeC)),
					fmtMean(s.Mean(domain.GradeD)),
				}
			}

			out.Print(headers, rows, summaries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rows")

	return cmd
}
