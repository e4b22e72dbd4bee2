package models

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimeEntryStatus string

const (
	EntryInProgress TimeEntryStatus = "In Progress"
	EntryCompleted  TimeEntryStatus = "Completed"
	EntryPaused     TimeEntryStatus = "Paused"
)

type TrackingType string

const (
	TrackingHourly  TrackingType = "Hourly"
	TrackingDaily   TrackingType = "Daily"
	TrackingWeekly  TrackingType = "Weekly"
	TrackingMonthly TrackingType = "Monthly"
)

// ValidTrackingType reports whether t names a known tracking granularity.
func ValidTrackingType(t TrackingType) bool {
	switch t {
	case TrackingHourly, TrackingDaily, TrackingWeekly, TrackingMonthly:
		return true
	}
	return false
}

// TimeEntry is a record of work performed, optionally still running.
// Invariant: at most one entry per (UserID, UserModel) with status
// "In Progress".
type TimeEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	UserModel     UserModel          `bson:"userModel" json:"userModel"`
	Project       primitive.ObjectID `bson:"project" json:"project"`
	Task          primitive.ObjectID `bson:"task" json:"task"`
	Description   string             `bson:"description" json:"description"`
	StartTime     time.Time          `bson:"startTime" json:"startTime"`
	EndTime       *time.Time         `bson:"endTime" json:"endTime"`
	Duration      int                `bson:"duration" json:"duration"` // minutes
	Billable      bool               `bson:"billable" json:"billable"`
	Status        TimeEntryStatus    `bson:"status" json:"status"`
	TrackingType  TrackingType       `bson:"trackingType" json:"trackingType"`
	IsManualEntry bool               `bson:"isManualEntry" json:"isManualEntry"`
	HourlyRate    float64            `bson:"hourlyRate" json:"hourlyRate"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotals recalculates Duration and TotalAmount from the entry's
// times. Duration is rounded to the nearest whole minute. TotalAmount is
// only touched when the entry is billable with a positive rate; it is kept
// as an unrounded float, currency rounding is left to consumers.
func (e *TimeEntry) ComputeTotals() {
	if e.StartTime.IsZero() || e.EndTime == nil {
		return
	}
	minutes := e.EndTime.Sub(e.StartTime).Minutes()
	e.Duration = int(math.Round(minutes))

	if e.HourlyRate > 0 && e.Billable {
		e.TotalAmount = (float64(e.Duration) / 60) * e.HourlyRate
	}
}

// FormattedDuration renders the duration as HH:MM:SS. Tracking is minute
// granular, so seconds are always zero.
func (e *TimeEntry) FormattedDuration() string {
	hours := e.Duration / 60
	minutes := e.Duration % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, 0)
}

// TimeSummary aggregates a user's entries over a date range.
type TimeSummary struct {
	TotalMinutes    int `bson:"totalMinutes" json:"totalMinutes"`
	BillableMinutes int `bson:"billableMinutes" json:"billableMinutes"`
	TotalEntries    int `bson:"totalEntries" json:"totalEntries"`
}
