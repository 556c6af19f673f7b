package collector

import "time"

// RunStats accumulates counters over one collection run. Mutated only by
// the single collection loop; read for the final summary.
type RunStats struct {
	TotalRequested int       `json:"total_requested"`
	Successful     int       `json:"successful"`
	Absent         int       `json:"absent"`
	Errors         int       `json:"errors"`
	Skipped        int       `json:"skipped"`
	WithPlayers    int       `json:"with_players"`
	WithMetacritic int       `json:"with_metacritic"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// Failed is the number of identifiers that yielded no record, absent and
// transient failures combined.
func (s *RunStats) Failed() int {
	return s.Absent + s.Errors
}

// Duration is the wall-clock time of the run.
func (s *RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// SuccessRate is the fraction of requested identifiers that yielded a
// record, in [0,1].
func (s *RunStats) SuccessRate() float64 {
	if s.TotalRequested == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.TotalRequested)
}
