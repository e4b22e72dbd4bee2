package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shift is the active tracking configuration for one employee.
// Invariant: at most one shift with IsActive=true per employee; the service
// deactivates prior shifts before inserting a new one.
type Shift struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID    primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	ShiftType     TrackingType       `bson:"shiftType" json:"shiftType"`
	StartTime     string             `bson:"startTime" json:"startTime"` // "09:00"
	EndTime       string             `bson:"endTime" json:"endTime"`     // "17:00"
	WorkingDays   []string           `bson:"workingDays" json:"workingDays"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	AssignedBy    primitive.ObjectID `bson:"assignedBy" json:"assignedBy"`
	AssignedDate  time.Time          `bson:"assignedDate" json:"assignedDate"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	HoursPerDay   int                `bson:"hoursPerDay" json:"hoursPerDay"`
	DaysPerWeek   int                `bson:"daysPerWeek" json:"daysPerWeek"`
	WeeksPerMonth int                `bson:"weeksPerMonth" json:"weeksPerMonth"`
	MonthlyHours  int                `bson:"monthlyHours" json:"monthlyHours"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// DefaultWorkingDays is the Monday-Friday schedule applied when a shift is
// assigned without one.
var DefaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
