// Package cli реализует команды инструмента loanpipe.
//
// Команды:
//   - run     — один сквозной прогон конвейера
//   - history — последние строки таблицы агрегатов
//
// CLI работает с конвейером и БД напрямую, без API-сервера:
// конвейер — батч-джоб, а не сервис.
//
// Код завершения процесса различает категории ошибок (конфигурация,
// получение данных, формат данных, персистентность), чтобы оператор
// видел сломавшийся этап без чтения логов.
package cli
