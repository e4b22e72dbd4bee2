package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Client       string               `bson:"client" json:"client"`
	Description  string               `bson:"description" json:"description"`
	StartDate    *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Deadline     *time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Progress     int                  `bson:"progress" json:"progress"` // 0-100
	Hours        float64              `bson:"hours" json:"hours"`
	Status       string               `bson:"status" json:"status"`
	Budget       float64              `bson:"budget" json:"budget"`
	Priority     string               `bson:"priority" json:"priority"`
	AssignedTeam []primitive.ObjectID `bson:"assignedTeam,omitempty" json:"assignedTeam,omitempty"`
}
