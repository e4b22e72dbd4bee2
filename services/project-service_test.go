package services

import (
	"testing"
	"time"
)

func TestParseDateField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2024-03-01T09:30:00Z", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDateField(tt.value)
		if err != nil {
			t.Fatalf("ParseDateField(%q): %v", tt.value, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateField(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	for _, bad := range []string{"", "03/01/2024", "yesterday"} {
		if _, err := ParseDateField(bad); err == nil {
			t.Errorf("ParseDateField(%q) succeeded, want error", bad)
		}
	}
}
