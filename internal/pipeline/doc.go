// Package pipeline реализует сквозной прогон ETL-конвейера.
//
// Этапы выполняются строго последовательно внутри одной функции:
// проверка наличия файла, условная загрузка из S3, два агрегата,
// создание схемы и вставка строки. Ветвление local/remote — обычный
// if/else: распределённый branch-оператор здесь не нужен, потому что
// шаги не разнесены по независимо планируемым узлам графа.
//
// Промежуточные значения передаются через типизированный runContext,
// а не через строковые ключи: несовпадение ключа перестаёт быть
// классом ошибок.
//
// Любая ошибка этапа завершает весь прогон: частичный агрегат
// никогда не сохраняется.
package pipeline
