package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on-hold"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task belongs to exactly one project. Deleted tasks are kept with
// IsActive=false and stay retrievable by direct ID lookup.
type Task struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Project        primitive.ObjectID  `bson:"project" json:"project"`
	AssignedTo     *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Priority       TaskPriority        `bson:"priority" json:"priority"`
	Status         TaskStatus          `bson:"status" json:"status"`
	EstimatedHours float64             `bson:"estimatedHours" json:"estimatedHours"`
	ActualHours    float64             `bson:"actualHours" json:"actualHours"`
	DueDate        *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Tags           []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`

	// Completion is derived, never stored; the service fills it before a
	// task is returned.
	Completion int `bson:"-" json:"completionPercentage"`
}

// CompletionPercentage derives progress from estimated vs actual hours,
// capped at 100.
func (t *Task) CompletionPercentage() int {
	if t.EstimatedHours == 0 {
		return 0
	}
	pct := int(t.ActualHours / t.EstimatedHours * 100)
	if pct > 100 {
		return 100
	}
	return pct
}
