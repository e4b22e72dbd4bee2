package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	token, err := GenerateToken("ana@example.com", "Employee", "TeamMember")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "Employee" {
		t.Errorf("Role = %q", claims.Role)
	}
	if claims.UserModel != "TeamMember" {
		t.Errorf("UserModel = %q", claims.UserModel)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ValidateToken(bad); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", bad)
		}
	}
}

func TestValidateTokenUsesCurrentSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("ana@example.com", "Employee", "TeamMember")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token); err != nil {
		t.Fatalf("ValidateToken under same secret: %v", err)
	}

	t.Setenv("JWT_SECRET", "rotated-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed under the old secret accepted")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Parallel()
	token, err := GenerateToken("ana@example.com", "Employee", "TeamMember")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered token accepted")
	}
}
