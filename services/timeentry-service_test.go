package services

import (
	"testing"

	"timesheet-project/backend/models"
)

func TestResolveTrackingType(t *testing.T) {
	t.Parallel()
	weekly := &models.Shift{ShiftType: models.TrackingWeekly}
	unset := &models.Shift{}

	tests := []struct {
		name   string
		caller models.TrackingType
		shift  *models.Shift
		want   models.TrackingType
	}{
		{"shift wins over caller", models.TrackingHourly, weekly, models.TrackingWeekly},
		{"caller used without shift", models.TrackingDaily, nil, models.TrackingDaily},
		{"caller used when shift type unset", models.TrackingMonthly, unset, models.TrackingMonthly},
		{"defaults to hourly", "", nil, models.TrackingHourly},
		{"invalid caller defaults to hourly", "Yearly", nil, models.TrackingHourly},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveTrackingType(tt.caller, tt.shift); got != tt.want {
				t.Errorf("resolveTrackingType(%q, shift) = %q, want %q", tt.caller, got, tt.want)
			}
		})
	}
}

func TestRoundHours(t *testing.T) {
	t.Parallel()
	tests := []struct {
		minutes int
		want    float64
	}{
		{0, 0},
		{60, 1},
		{90, 1.5},
		{100, 1.67},
		{125, 2.08},
		{1, 0.02},
	}
	for _, tt := range tests {
		if got := RoundHours(tt.minutes); got != tt.want {
			t.Errorf("RoundHours(%d) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}
