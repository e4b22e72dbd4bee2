package services

import (
	"testing"

	"timesheet-project/backend/models"
	"timesheet-project/backend/utils"
)

// The secret is loaded from .env after package init, so the issued token must
// validate against the secret as it is at request time, not at startup.
func TestGenerateAuthTokenValidatesAgainstLateLoadedSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-loaded-from-dotenv")

	svc := &JWTService{}
	token, err := svc.GenerateAuthToken("marko@example.com", "Manager", models.UserModelUser)
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken rejected a freshly issued token: %v", err)
	}
	if claims.Email != "marko@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "Manager" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.UserModel != string(models.UserModelUser) {
		t.Errorf("UserModel = %q", claims.UserModel)
	}
}
