package models

import "testing"

func TestCompletionPercentage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		estimated float64
		actual    float64
		want      int
	}{
		{"no estimate", 0, 5, 0},
		{"halfway", 10, 5, 50},
		{"complete", 8, 8, 100},
		{"overrun capped", 10, 15, 100},
		{"not started", 10, 0, 0},
	}
	for _, tt := range tests {
		task := Task{EstimatedHours: tt.estimated, ActualHours: tt.actual}
		if got := task.CompletionPercentage(); got != tt.want {
			t.Errorf("%s: CompletionPercentage() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
