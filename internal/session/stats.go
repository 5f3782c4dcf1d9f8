package session

// Stats holds a user's cumulative performance counters. The average score
// is always derived from the counters, never stored, so it cannot drift.
type Stats struct {
	TotalCases       int
	CorrectDiagnoses int
	CorrectTriages   int
}

// AverageScore returns the percentage of available credit earned: each
// case offers one diagnosis point and one triage point.
func (s Stats) AverageScore() float64 {
	if s.TotalCases == 0 {
		return 0
	}
	return float64(s.CorrectDiagnoses+s.CorrectTriages) / float64(s.TotalCases*2) * 100
}
