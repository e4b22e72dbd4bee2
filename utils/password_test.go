package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomPassword(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password := GenerateRandomPassword()
		if len(password) != 10 {
			t.Fatalf("len = %d, want 10", len(password))
		}
		for _, c := range password {
			if !strings.ContainsRune(passwordCharset, c) {
				t.Fatalf("password %q contains %q outside the charset", password, c)
			}
		}
		seen[password] = true
	}
	if len(seen) < 2 {
		t.Error("20 generated passwords were all identical")
	}
}

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()
	first, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("len = %d, want 64 hex characters", len(first))
	}

	second, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if first == second {
		t.Error("two reset tokens were identical")
	}
}
