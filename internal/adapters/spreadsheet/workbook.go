package spreadsheet

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"trip-distance-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps one open .xlsx file and knows which columns hold trip
// fields. All reads and writes target the first sheet.
type Workbook struct {
	file  *excelize.File
	sheet string
	rows  [][]string
	cols  columns
}

// columns holds 0-based column indexes; -1 means the column is absent.
type columns struct {
	origin             int
	originState        int
	originCountry      int
	destination        int
	destinationState   int
	destinationCountry int
	modes              int
}

// SkippedRow records an input row excluded from processing. Skipped rows
// still receive sentinel cells so the output keeps one row per input row.
type SkippedRow struct {
	Row    int
	Reason string
}

// Open loads the first sheet of a workbook and locates the trip columns.
// A workbook without a destination column is rejected outright; a missing
// origin column only means every row uses the default origin.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}

	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("open workbook %q: no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		f.Close()
		return nil, fmt.Errorf("open workbook %q: sheet %q is empty", path, sheet)
	}

	cols, err := findColumns(rows[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("workbook %q: %w", path, err)
	}

	if cols.origin == -1 {
		log.Printf("workbook %s has no origin column; the default origin applies to every row", path)
	}

	return &Workbook{file: f, sheet: sheet, rows: rows, cols: cols}, nil
}

func (w *Workbook) Close() error { return w.file.Close() }

// ReadTrips converts data rows to trip requests, in sheet order. Rows
// with a blank destination are reported as skipped, not dropped.
func (w *Workbook) ReadTrips() ([]domain.TripRequest, []SkippedRow) {
	trips := make([]domain.TripRequest, 0, len(w.rows)-1)
	skipped := []SkippedRow{}

	for i, row := range w.rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		if isEmptyRow(row) {
			continue
		}

		destination := domain.Location{
			City:    w.cell(row, w.cols.destination),
			State:   w.cell(row, w.cols.destinationState),
			Country: w.cell(row, w.cols.destinationCountry),
		}
		if destination.IsBlank() {
			skipped = append(skipped, SkippedRow{Row: rowNum, Reason: "destination is blank"})
			continue
		}

		origin := domain.Location{
			City:    w.cell(row, w.cols.origin),
			State:   w.cell(row, w.cols.originState),
			Country: w.cell(row, w.cols.originCountry),
		}

		trips = append(trips, domain.TripRequest{
			Row:         rowNum,
			Origin:      origin,
			Destination: destination,
			Modes:       parseModes(rowNum, w.cell(row, w.cols.modes)),
		})
	}

	return trips, skipped
}

func (w *Workbook) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func findColumns(header []string) (columns, error) {
	cols := columns{
		origin:             -1,
		originState:        -1,
		originCountry:      -1,
		destination:        -1,
		destinationState:   -1,
		destinationCountry: -1,
		modes:              -1,
	}

	for i, h := range header {
		switch normalizeHeader(h) {
		case "starting_city", "origin", "origin_city", "from":
			cols.origin = i
		case "starting_state", "origin_state":
			cols.originState = i
		case "starting_country", "origin_country":
			cols.originCountry = i
		case "destination", "destination_city", "to":
			cols.destination = i
		case "destination_state":
			cols.destinationState = i
		case "destination_country":
			cols.destinationCountry = i
		case "mode", "modes", "travel_modes":
			cols.modes = i
		}
	}

	if cols.destination == -1 {
		return columns{}, errors.New("no destination column in header row")
	}

	return cols, nil
}

// normalizeHeader canonicalizes a header cell for matching. Exact matches
// on the canonical form keep "Destination" from colliding with
// "Destination_State".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// parseModes splits a modes cell ("driving, transit") into travel modes.
// Unknown tokens are logged and ignored; an empty or unusable cell means
// every supported mode.
func parseModes(rowNum int, cell string) []domain.TravelMode {
	if cell == "" {
		return nil
	}

	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})

	modes := make([]domain.TravelMode, 0, len(fields))
	seen := make(map[domain.TravelMode]struct{}, len(fields))
	for _, f := range fields {
		m, err := domain.ParseTravelMode(f)
		if err != nil {
			log.Printf("row=%d ignoring mode token %q", rowNum, strings.TrimSpace(f))
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		modes = append(modes, m)
	}

	return modes
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
