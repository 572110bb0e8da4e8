package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики прогонов конвейера. Экспортируются scheduler-демоном
// на /metrics; в одноразовом CLI-запуске регистрируются, но не
// экспортируются.
var (
	// runsTotal — завершённые прогоны по статусу и категории ошибки.
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loanpipe_runs_total",
		Help: "Completed pipeline runs by terminal status and failure kind.",
	}, []string{"status", "failure_kind"})

	// stageDuration — длительность этапов конвейера.
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loanpipe_stage_duration_seconds",
		Help:    "Duration of pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// datasetRows — число строк данных в последнем обработанном датасете.
	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loanpipe_dataset_rows",
		Help: "Data rows in the most recently aggregated dataset.",
	})
)

// RecordRun учитывает завершённый прогон.
func RecordRun(status, failureKind string) {
	runsTotal.WithLabelValues(status, failureKind).Inc()
}

// ObserveStage учитывает длительность этапа.
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetDatasetRows запоминает размер последнего датасета.
func SetDatasetRows(rows int64) {
	datasetRows.Set(float64(rows))
}
