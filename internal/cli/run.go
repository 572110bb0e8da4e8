package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shaiso/loanpipe/internal/config"
	"github.com/shaiso/loanpipe/internal/pipeline"
	"github.com/shaiso/loanpipe/internal/repo"
	"github.com/shaiso/loanpipe/internal/source"
)

// NewRunCmd создаёт команду одного сквозного прогона.
func NewRunCmd(outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run",
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

			fetcher, err := source.NewS3Fetcher(ctx, source.S3FetcherConfig{
				Bucket:  cfg.S3Bucket,
				Key:     cfg.S3Key,
				DestDir: cfg.DatasetDir,
				Region:  cfg.AWSRegion,
				Timeout: cfg.FetchTimeout,
				Logger:  slog.Default(),
			})
			if err != nil {
				return &ExitError{Code: ExitConfig, Err: err}
			}

			p := pipeline.New(pipeline.Config{
				DatasetPath: cfg.DatasetPath(),
				Fetcher:     fetcher,
				Store:       repo.NewSummaryRepo(pool),
				Logger:      slog.Default(),
				DBTimeout:   cfg.DBTimeout,
			})

			run, runErr := p.Execute(ctx)

			out.Print(
				[]string{"ID", "STATUS", "STAGE", "FAILURE", "DURATION"},
				[][]string{{
					run.ID.String(),
					string(run.Status),
					string(run.Stage),
					string(run.FailureKind),
					run.Duration().String(),
				}},
				run,
			)

			if runErr != nil {
				return &ExitError{Code: ExitCodeFor(run.FailureKind), Err: runErr}
			}
			return nil
		},
	}
}
