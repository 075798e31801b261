package spreadsheet

import (
	"fmt"
	"strings"
	"trip-distance-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// resultHeaders lists the output columns in writing order. Every mode
// contributes distance and duration columns except flight, which has no
// duration estimate.
func resultHeaders() []string {
	headers := make([]string, 0, 9)
	for _, m := range domain.AllModes() {
		prefix := m.ColumnPrefix()
		headers = append(headers, prefix+"_Distance_km")
		if m != domain.ModeFlight {
			headers = append(headers, prefix+"_Duration_hrs")
		}
	}
	return headers
}

// ensureResultColumns locates existing result columns and appends any
// that are missing, so re-running over previous output reuses columns
// instead of duplicating them. Returns header name -> 0-based index.
func (w *Workbook) ensureResultColumns() (map[string]int, error) {
	header := w.rows[0]

	existing := make(map[string]int, len(header))
	for i, h := range header {
		existing[strings.TrimSpace(h)] = i
	}

	out := make(map[string]int, 9)
	next := len(header)
	for _, h := range resultHeaders() {
		if i, ok := existing[h]; ok {
			out[h] = i
			continue
		}

		if err := w.setCell(next, 1, h); err != nil {
			return nil, fmt.Errorf("append header %q: %w", h, err)
		}
		out[h] = next
		next++
	}

	return out, nil
}

// WriteResults fills the result columns for each computed row. Modes the
// row did not attempt stay empty; failed lookups get the sentinel.
func (w *Workbook) WriteResults(rows []domain.OutputRow) error {
	cols, err := w.ensureResultColumns()
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	for _, row := range rows {
		for _, r := range row.Results {
			if err := w.writeModeResult(cols, row.Row, r); err != nil {
				return fmt.Errorf("write results row=%d: %w", row.Row, err)
			}
		}
	}

	return nil
}

func (w *Workbook) writeModeResult(cols map[string]int, rowNum int, r domain.ModeResult) error {
	prefix := r.Mode.ColumnPrefix()

	var distance, duration any
	if r.Status == domain.StatusOK {
		distance = r.DistanceKm
		duration = r.DurationHours
	} else {
		distance = domain.NotAvailable
		duration = domain.NotAvailable
	}

	if err := w.setCell(cols[prefix+"_Distance_km"], rowNum, distance); err != nil {
		return err
	}
	if r.Mode == domain.ModeFlight {
		return nil
	}
	return w.setCell(cols[prefix+"_Duration_hrs"], rowNum, duration)
}

// MarkSkipped writes the sentinel into every result cell of rows that
// failed validation, keeping one output row per input row.
func (w *Workbook) MarkSkipped(skipped []SkippedRow) error {
	if len(skipped) == 0 {
		return nil
	}

	cols, err := w.ensureResultColumns()
	if err != nil {
		return fmt.Errorf("mark skipped: %w", err)
	}

	for _, s := range skipped {
		for _, h := range resultHeaders() {
			if err := w.setCell(cols[h], s.Row, domain.NotAvailable); err != nil {
				return fmt.Errorf("mark skipped row=%d: %w", s.Row, err)
			}
		}
	}

	return nil
}

// SaveAs writes the augmented workbook to path. Input rows keep their
// order because result cells are written in place.
func (w *Workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

func (w *Workbook) setCell(col int, rowNum int, v any) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Errorf("column name for %d: %w", col+1, err)
	}

	cell := fmt.Sprintf("%s%d", name, rowNum)
	if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}

	return nil
}
