package eval

import (
	"fmt"
	"io"
	"strings"
)

const cellWidth = 20

// Row is the final result of one tracker
type Row struct {
	Name   string
	Kind   Kind
	Scores Scores
	// Videos is number of fully evaluated videos
	Videos         int
	Frames         int
	ValidFrames    int
	InitFailures   int
	UpdateFailures int
	// Err is set when evaluation of the tracker was aborted
	Err error
}

// Report is comparison table of all trackers
type Report struct {
	Rows []Row
}

// Header returns titles of table columns
func (report *Report) Header() []string {
	return []string{"Names:", "IoU:", "Precision:", "N.Precision:"}
}

// Cells returns formatted values of the row
func (row Row) Cells() []string {
	if row.Err != nil {
		return []string{row.Name, "ERROR", "ERROR", "ERROR"}
	}
	return []string{
		row.Name,
		fmt.Sprintf("%.4f", row.Scores.IoU),
		fmt.Sprintf("%.4f", row.Scores.Precision),
		fmt.Sprintf("%.4f", row.Scores.NormPrecision),
	}
}

// FormatLine left-justifies cells and joins them with '|'
func FormatLine(cells []string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = fmt.Sprintf("%-*s", cellWidth, cell)
	}
	return strings.Join(padded, "|")
}

// WriteTable writes header, separator rule and one line per tracker
func (report *Report) WriteTable(w io.Writer) error {
	header := FormatLine(report.Header())
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(header))); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if _, err := fmt.Fprintln(w, FormatLine(row.Cells())); err != nil {
			return err
		}
	}
	return nil
}

// Failed returns rows of aborted trackers
func (report *Report) Failed() []Row {
	failed := []Row{}
	for _, row := range report.Rows {
		if row.Err != nil {
			failed = append(failed, row)
		}
	}
	return failed
}
