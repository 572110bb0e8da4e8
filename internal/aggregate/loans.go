package aggregate

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shaiso/loanpipe/internal/domain"
)

// Имена столбцов датасета, участвующих в доменной агрегации.
const (
	gradeColumn      = "grade"
	loanAmountColumn = "loan_amount"
)

// LoanMeans считает среднее арифметическое loan_amount по каждому
// грейду из domain.Grades.
//
// Грейд без единой строки даёт nil: среднее пустого множества не
// определено и не приводится к нулю. Грейды вне A–D игнорируются —
// агрегация отслеживает только четыре категории.
func LoanMeans(path string) (map[domain.Grade]*float64, error) {
	f, r, header, err := openDataset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gradeIdx, err := columnIndex(header, gradeColumn)
	if err != nil {
		return nil, err
	}
	amountIdx, err := columnIndex(header, loanAmountColumn)
	if err != nil {
		return nil, err
	}

	sums := make(map[domain.Grade]float64, len(domain.Grades))
	counts := make(map[domain.Grade]int64, len(domain.Grades))
	tracked := make(map[domain.Grade]bool, len(domain.Grades))
	for _, g := range domain.Grades {
		tracked[g] = true
	}

	var line int64
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", line+1, err)
		}
		line++

		grade := domain.Grade(strings.TrimSpace(rec[gradeIdx]))
		if !tracked[grade] {
			continue
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(rec[amountIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w: %s=%q", line, ErrBadNumeric, loanAmountColumn, rec[amountIdx])
		}

		sums[grade] += amount
		counts[grade]++
	}

	means := make(map[domain.Grade]*float64, len(domain.Grades))
	for _, g := range domain.Grades {
		if counts[g] == 0 {
			means[g] = nil
			continue
		}
		m := sums[g] / float64(counts[g])
		means[g] = &m
	}
	return means, nil
}
