package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveApplication is a free-standing request record. Review fields are set
// only when the application leaves the pending state.
type LeaveApplication struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeName     string             `bson:"employeeName" json:"employeeName"`
	SupervisorName   string             `bson:"supervisorName" json:"supervisorName"`
	Department       string             `bson:"department" json:"department"`
	LeaveDate        string             `bson:"leaveDate" json:"leaveDate"`
	LeaveTime        string             `bson:"leaveTime" json:"leaveTime"`
	LeaveType        string             `bson:"leaveType" json:"leaveType"`
	Duration         string             `bson:"duration" json:"duration"`
	SelectedReasons  []string           `bson:"selectedReasons" json:"selectedReasons"`
	OtherReason      string             `bson:"otherReason" json:"otherReason"`
	Description      string             `bson:"description" json:"description"`
	EmergencyContact string             `bson:"emergencyContact" json:"emergencyContact"`
	EmergencyPhone   string             `bson:"emergencyPhone" json:"emergencyPhone"`
	Status           LeaveStatus        `bson:"status" json:"status"`
	SubmittedAt      time.Time          `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt       *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy       string             `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	Comments         string             `bson:"comments,omitempty" json:"comments,omitempty"`
}
