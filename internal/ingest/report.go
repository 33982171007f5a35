package ingest

import "fmt"

// ScoredGame records how many stat rows one game's scoring pass wrote.
type ScoredGame struct {
	EventID string `json:"event_id"`
	Rows    int    `json:"rows"`
}

// GameError records a per-game failure during bulk ingestion.
type GameError struct {
	EventID string `json:"event_id"`
	Error   string `json:"error"`
}

// WeekReport accumulates the outcome of a bulk week ingestion. Partial
// success is the normal case: one bad game never aborts the week.
type WeekReport struct {
	Year     int          `json:"year"`
	Week     int          `json:"week"`
	Events   []string     `json:"events"`
	Saved    []string     `json:"saved"`
	Scored   []ScoredGame `json:"scored"`
	Errors   []GameError  `json:"errors"`
	AllFinal bool         `json:"allFinal"`
}

// AddError records a per-game failure.
func (r *WeekReport) AddError(eventID string, err error) {
	r.Errors = append(r.Errors, GameError{EventID: eventID, Error: err.Error()})
}

// Summary returns a human-readable summary of the ingestion.
func (r *WeekReport) Summary() string {
	return fmt.Sprintf(
		"year=%d week=%d events=%d saved=%d scored=%d errors=%d allFinal=%t",
		r.Year, r.Week, len(r.Events), len(r.Saved), len(r.Scored), len(r.Errors), r.AllFinal,
	)
}
