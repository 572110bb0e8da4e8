// loanpipe-scheduler — демон, запускающий ETL-конвейер по расписанию
// (по умолчанию раз в сутки).
//
// Экспортирует /healthz и /metrics; конкурентные прогоны между
// экземплярами демона сериализуются через pg advisory lock.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/loanpipe/internal/config"
	"github.com/shaiso/loanpipe/internal/pipeline"
	"github.com/shaiso/loanpipe/internal/repo"
	"github.com/shaiso/loanpipe/internal/scheduler"
	"github.com/shaiso/loanpipe/internal/source"
	"github.com/shaiso/loanpipe/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	logger := telemetry.SetupLogger()
	logger.Info("starting loanpipe-scheduler")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// DB pool
	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	fetcher, err := source.NewS3Fetcher(ctx, source.S3FetcherConfig{
		Bucket:  cfg.S3Bucket,
		Key:     cfg.S3Key,
		DestDir: cfg.DatasetDir,
		Region:  cfg.AWSRegion,
		Timeout: cfg.FetchTimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to create fetcher", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(pipeline.Config{
		DatasetPath: cfg.DatasetPath(),
		Fetcher:     fetcher,
		Store:       repo.NewSummaryRepo(pool),
		Logger:      logger,
		DBTimeout:   cfg.DBTimeout,
	})

	sched, err := scheduler.New(scheduler.Config{
		Pipeline: p,
		Pool:     pool,
		CronExpr: cfg.CronExpr,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}

	if err := sched.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := ":" + cfg.HTTPPort
		logger.Info("listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	sched.Stop()
	logger.Info("loanpipe-scheduler stopped")
}
