package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// Output форматирует вывод CLI: таблица для людей, JSON для машин.
type Output struct {
	jsonMode bool
	w        io.Writer
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{jsonMode: jsonMode, w: os.Stdout}
}

// Print выводит данные в выбранном формате.
func (o *Output) Print(headers []string, rows [][]string, jsonData any) {
	if o.jsonMode {
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		enc.Encode(jsonData)
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// fmtMean форматирует nullable среднее: NULL для отсутствующего грейда.
func fmtMean(m *float64) string {
	if m == nil {
		return "NULL"
	}
	return strconv.FormatFloat(*m, 'f', 2, 64)
}

// fmtTime форматирует timestamp таблицы агрегатов.
func fmtTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
