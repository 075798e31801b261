package services

import (
	"log"
	"trip-distance-service/internal/domain"
)

// Fallback is one (row, mode) pair that degraded to the sentinel.
type Fallback struct {
	Row    int
	Mode   domain.TravelMode
	Reason string
}

// Summary aggregates row outcomes for the end-of-run report. Partial
// counts rows where at least one mode fell back.
type Summary struct {
	Total     int
	Full      int
	Partial   int
	Skipped   int
	Fallbacks []Fallback
}

func NewSummary() *Summary {
	return &Summary{Fallbacks: []Fallback{}}
}

// Record tallies one produced output row.
func (s *Summary) Record(row domain.OutputRow) {
	s.Total++

	for _, r := range row.Results {
		if r.Status != domain.StatusOK {
			s.Partial++
			return
		}
	}
	s.Full++
}

// RecordFallback notes a (row, mode) pair that fell back to the sentinel.
func (s *Summary) RecordFallback(row int, mode domain.TravelMode, err error) {
	s.Fallbacks = append(s.Fallbacks, Fallback{Row: row, Mode: mode, Reason: err.Error()})
}

// RecordSkipped adds rows excluded during input validation.
func (s *Summary) RecordSkipped(n int) {
	s.Skipped += n
}

// Log prints the end-of-run report, one line per fallback.
func (s *Summary) Log() {
	log.Printf("summary rows=%d full=%d partial=%d skipped=%d fallbacks=%d",
		s.Total+s.Skipped, s.Full, s.Partial, s.Skipped, len(s.Fallbacks))

	for _, f := range s.Fallbacks {
		log.Printf("fallback row=%d mode=%s reason=%q", f.Row, f.Mode, f.Reason)
	}
}
