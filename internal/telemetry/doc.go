// Package telemetry обеспечивает наблюдаемость конвейера.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики прогонов
//
// CLI и scheduler-демон используют единый формат логирования;
// демон экспортирует метрики на /metrics endpoint.
package telemetry
