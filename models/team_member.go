package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is an employee record. EmployeeID is assigned once at creation
// (sequential "EMP###") and never changes.
type TeamMember struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID           string             `bson:"employeeId" json:"employeeId"`
	Name                 string             `bson:"name" json:"name"`
	Project              primitive.ObjectID `bson:"project" json:"project"`
	Email                string             `bson:"email" json:"email"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password             string             `bson:"password" json:"-"`
	Address              string             `bson:"address,omitempty" json:"address,omitempty"`
	BankName             string             `bson:"bankName,omitempty" json:"bankName,omitempty"`
	BankAddress          string             `bson:"bankAddress,omitempty" json:"bankAddress,omitempty"`
	AccountHolder        string             `bson:"accountHolder,omitempty" json:"accountHolder,omitempty"`
	AccountHolderAddress string             `bson:"accountHolderAddress,omitempty" json:"accountHolderAddress,omitempty"`
	Account              string             `bson:"account,omitempty" json:"account,omitempty"`
	AccountType          string             `bson:"accountType,omitempty" json:"accountType,omitempty"`
	Charges              float64            `bson:"charges" json:"charges"`
	Status               string             `bson:"status" json:"status"`
	Role                 string             `bson:"role" json:"role"`
	Shift                string             `bson:"shift,omitempty" json:"shift,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
