package services

import (
	"timesheet-project/backend/models"
	"timesheet-project/backend/utils"
)

// JWTService issues the HS256 session tokens used by the API. Issuance
// delegates to the utils token codec so the middleware validates against the
// same secret the token was signed with.
type JWTService struct{}

// GenerateAuthToken creates a session token carrying the principal's email,
// role and collection discriminator. Valid for 24 hours.
func (s *JWTService) GenerateAuthToken(email, role string, userModel models.UserModel) (string, error) {
	return utils.GenerateToken(email, role, string(userModel))
}
