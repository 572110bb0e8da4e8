// Package scheduler запускает ETL-конвейер по расписанию.
//
// Структура:
//   - scheduler.go — запуск прогонов по cron-расписанию
//   - cron.go      — парсинг cron-выражений и вычисление следующего времени
//
// Прогон не параметризуется временем срабатывания: все пути и ключи
// предконфигурированы, триггер лишь говорит «пора».
//
// Конкурентные прогоны не допускаются: внутри процесса — атомарный
// флаг, между процессами — pg advisory lock. Пропущенный из-за ещё
// идущего прогона тик не навёрстывается.
package scheduler
