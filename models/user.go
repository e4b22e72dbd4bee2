package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an administrative account (Admin or Manager). Regular employees
// live in the teammembers collection as TeamMember.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Phone    string             `bson:"phone" json:"phone"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
}

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)
