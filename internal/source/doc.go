// Package source отвечает за получение файла датасета.
//
// Структура:
//   - local.go — проверка наличия файла и атомарная запись на диск
//   - s3.go    — загрузка объекта из S3 с таймаутом и одним retry
//
// Файл датасета read-only для всего конвейера; единственный писатель —
// fetcher, и только когда файла ещё нет.
package source
