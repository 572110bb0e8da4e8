// Package aggregate вычисляет агрегаты по CSV-датасету кредитов.
//
// Структура:
//   - general.go — число строк данных и объявленных столбцов
//   - loans.go   — среднее loan_amount по грейдам A–D
//   - reader.go  — общее чтение CSV
//
// Оба агрегатора читают файл независимо и не изменяют его.
// Любая ошибка парсинга фатальна: агрегат по битым данным не считается
// и молча не заменяется нулём.
package aggregate
