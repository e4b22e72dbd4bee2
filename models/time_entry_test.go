package models

import (
	"testing"
	"time"
)

func TestComputeTotalsRoundsToNearestMinute(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"exact hour", time.Hour, 60},
		{"rounds down", 29*time.Minute + 20*time.Second, 29},
		{"rounds up", 29*time.Minute + 40*time.Second, 30},
		{"half minute rounds up", 30 * time.Second, 1},
		{"zero elapsed", 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			end := start.Add(tt.elapsed)
			entry := TimeEntry{StartTime: start, EndTime: &end}
			entry.ComputeTotals()
			if entry.Duration != tt.want {
				t.Errorf("Duration = %d, want %d", entry.Duration, tt.want)
			}
		})
	}
}

func TestComputeTotalsBillableAmount(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	entry := TimeEntry{StartTime: start, EndTime: &end, Billable: true, HourlyRate: 30}
	entry.ComputeTotals()
	if entry.Duration != 90 {
		t.Fatalf("Duration = %d, want 90", entry.Duration)
	}
	if entry.TotalAmount != 45.0 {
		t.Errorf("TotalAmount = %v, want 45.0", entry.TotalAmount)
	}
}

func TestComputeTotalsSkipsAmountWhenNotBillable(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	entry := TimeEntry{StartTime: start, EndTime: &end, Billable: false, HourlyRate: 50}
	entry.ComputeTotals()
	if entry.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0 for non-billable entry", entry.TotalAmount)
	}

	entry = TimeEntry{StartTime: start, EndTime: &end, Billable: true, HourlyRate: 0}
	entry.ComputeTotals()
	if entry.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0 when rate is zero", entry.TotalAmount)
	}
}

func TestComputeTotalsNoopWithoutEndTime(t *testing.T) {
	t.Parallel()
	entry := TimeEntry{StartTime: time.Now(), Duration: 15}
	entry.ComputeTotals()
	if entry.Duration != 15 {
		t.Errorf("Duration = %d, want untouched 15", entry.Duration)
	}
}

func TestFormattedDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00:00"},
		{5, "00:05:00"},
		{60, "01:00:00"},
		{125, "02:05:00"},
		{600, "10:00:00"},
	}
	for _, tt := range tests {
		entry := TimeEntry{Duration: tt.minutes}
		if got := entry.FormattedDuration(); got != tt.want {
			t.Errorf("FormattedDuration(%d min) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestValidTrackingType(t *testing.T) {
	t.Parallel()
	for _, valid := range []TrackingType{TrackingHourly, TrackingDaily, TrackingWeekly, TrackingMonthly} {
		if !ValidTrackingType(valid) {
			t.Errorf("ValidTrackingType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []TrackingType{"", "hourly", "Yearly"} {
		if ValidTrackingType(invalid) {
			t.Errorf("ValidTrackingType(%q) = true, want false", invalid)
		}
	}
}
