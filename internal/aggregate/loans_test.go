package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shaiso/loanpipe/internal/domain"
)

func TestLoanMeans(t *testing.T) {
	path := writeCSV(t, "id,grade,loan_amount\n"+
		"1,A,1000\n"+
		"2,A,3000\n"+
		"3,B,500\n"+
		"4,C,700\n"+
		"5,C,900\n")

	means, err := LoanMeans(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMean(t, means, domain.GradeA, 2000)
	assertMean(t, means, domain.GradeB, 500)
	assertMean(t, means, domain.GradeC, 800)

	// Грейд без строк — nil, не 0
	if means[domain.GradeD] != nil {
		t.Errorf("expected nil mean for empty grade D, got %v", *means[domain.GradeD])
	}
}

// TestLoanMeans_Scenario — 100 строк, 40 из них грейда A со средним 1000,
// ни одной строки грейда D.
func TestLoanMeans_Scenario(t *testing.T) {
	var b strings.Builder
	b.WriteString("id,grade,loan_amount,term,purpose\n")
	for i := 0; i < 40; i++ {
		// Среднее по A ровно 1000: половина по 500, половина по 1500
		amount := 500
		if i%2 == 0 {
			amount = 1500
		}
		fmt.Fprintf(&b, "%d,A,%d,36,car\n", i, amount)
	}
	for i := 40; i < 70; i++ {
		fmt.Fprintf(&b, "%d,B,%d,36,car\n", i, 2000)
	}
	for i := 70; i < 100; i++ {
		fmt.Fprintf(&b, "%d,C,%d,60,house\n", i, 3000)
	}
	path := writeCSV(t, b.String())

	rows, cols, err := Counts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 100 {
		t.Errorf("expected 100 rows, got %d", rows)
	}
	if cols != 5 {
		t.Errorf("expected 5 cols, got %d", cols)
	}

	means, err := LoanMeans(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMean(t, means, domain.GradeA, 1000)
	if means[domain.GradeD] != nil {
		t.Errorf("expected nil mean for grade D, got %v", *means[domain.GradeD])
	}
}

func TestLoanMeans_UnknownGradesIgnored(t *testing.T) {
	path := writeCSV(t, "id,grade,loan_amount\n"+
		"1,A,1000\n"+
		"2,E,9999\n"+
		"3,F,9999\n")

	means, err := LoanMeans(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// E и F не отслеживаются и не влияют на A–D
	assertMean(t, means, domain.GradeA, 1000)
	for _, g := range []domain.Grade{domain.GradeB, domain.GradeC, domain.GradeD} {
		if means[g] != nil {
			t.Errorf("expected nil mean for grade %s", g)
		}
	}
}

func TestLoanMeans_MissingColumn(t *testing.T) {
	path := writeCSV(t, "id,loan_amount\n1,1000\n")

	_, err := LoanMeans(path)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoanMeans_BadNumeric(t *testing.T) {
	path := writeCSV(t, "id,grade,loan_amount\n1,A,a-lot\n")

	_, err := LoanMeans(path)
	if !errors.Is(err, ErrBadNumeric) {
		t.Fatalf("expected ErrBadNumeric, got %v", err)
	}
}

func assertMean(t *testing.T, means map[domain.Grade]*float64, g domain.Grade, want float64) {
	t.Helper()
	got := means[g]
	if got == nil {
		t.Fatalf("expected mean %v for grade %s, got nil", want, g)
	}
	if *got != want {
		t.Errorf("expected mean %v for grade %s, got %v", want, g, *got)
	}
}
