package session

import "testing"

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"no cases", Stats{}, 0},
		{"perfect", Stats{TotalCases: 2, CorrectDiagnoses: 2, CorrectTriages: 2}, 100},
		{"half credit", Stats{TotalCases: 1, CorrectDiagnoses: 1}, 50},
		{"mixed", Stats{TotalCases: 4, CorrectDiagnoses: 3, CorrectTriages: 2}, 62.5},
		{"all wrong", Stats{TotalCases: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.AverageScore(); got != tt.want {
				t.Errorf("AverageScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
