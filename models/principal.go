package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserModel discriminates which collection a principal lives in.
type UserModel string

const (
	UserModelUser       UserModel = "User"
	UserModelTeamMember UserModel = "TeamMember"
)

// Valid reports whether the discriminator names a known collection.
func (m UserModel) Valid() bool {
	return m == UserModelUser || m == UserModelTeamMember
}

// PrincipalVariant classifies a principal by its authority.
type PrincipalVariant string

const (
	VariantAdminOrManager PrincipalVariant = "AdminOrManager"
	VariantEmployee       PrincipalVariant = "Employee"
)

// Principal is the tagged union over User and TeamMember. Exactly one of
// User/Member is set, matching Model.
type Principal struct {
	Model  UserModel   `json:"userModel"`
	User   *User       `json:"user,omitempty"`
	Member *TeamMember `json:"member,omitempty"`
}

// Variant derives the authority class from the underlying record.
func (p Principal) Variant() PrincipalVariant {
	if p.Model == UserModelUser {
		return VariantAdminOrManager
	}
	if p.Member != nil && (p.Member.Role == RoleAdmin || p.Member.Role == RoleManager) {
		return VariantAdminOrManager
	}
	return VariantEmployee
}

// ID returns the document ID of the underlying record.
func (p Principal) ID() primitive.ObjectID {
	if p.Model == UserModelUser && p.User != nil {
		return p.User.ID
	}
	if p.Member != nil {
		return p.Member.ID
	}
	return primitive.NilObjectID
}

// Email returns the email of the underlying record.
func (p Principal) Email() string {
	if p.Model == UserModelUser && p.User != nil {
		return p.User.Email
	}
	if p.Member != nil {
		return p.Member.Email
	}
	return ""
}

// Role returns the concrete role string of the underlying record.
func (p Principal) Role() string {
	if p.Model == UserModelUser && p.User != nil {
		return p.User.Role
	}
	if p.Member != nil {
		return p.Member.Role
	}
	return ""
}

// HashedPassword returns the stored bcrypt hash.
func (p Principal) HashedPassword() string {
	if p.Model == UserModelUser && p.User != nil {
		return p.User.Password
	}
	if p.Member != nil {
		return p.Member.Password
	}
	return ""
}
