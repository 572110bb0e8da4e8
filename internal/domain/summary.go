package domain

import "time"

// Grade — категория кредита в датасете.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Grades — грейды, по которым считаются средние.
// Строки с другими значениями grade агрегацией игнорируются.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD}

// RunSummary — единственная выходная запись одного прогона.
//
// Запись создаётся заново на каждый run и только добавляется
// в растущую таблицу: никогда не обновляется и не удаляется.
type RunSummary struct {
	// RowCount — число строк данных в датасете (без заголовка).
	RowCount int64 `json:"nb_lines"`

	// ColCount — число объявленных столбцов.
	ColCount int64 `json:"nb_cols"`

	// DateAndHour — время вставки по часам writer'а,
	// не время агрегации.
	DateAndHour time.Time `json:"date_and_hour"`

	// MeanLoan — среднее loan_amount по каждому грейду.
	// nil для грейда без единой строки: среднее пустого множества
	// не определено и не должно превращаться в 0.
	MeanLoan map[Grade]*float64 `json:"mean_loan"`
}

// Mean возвращает среднее для грейда или nil, если строк не было.
func (s *RunSummary) Mean(g Grade) *float64 {
	if s.MeanLoan == nil {
		return nil
	}
	return s.MeanLoan[g]
}
