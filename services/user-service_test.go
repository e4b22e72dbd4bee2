package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateMemberCredentials(t *testing.T) {
	t.Parallel()
	plain, hash, err := generateMemberCredentials()
	if err != nil {
		t.Fatalf("generateMemberCredentials: %v", err)
	}
	if len(plain) != 10 {
		t.Errorf("password length = %d, want 10", len(plain))
	}
	if hash == plain {
		t.Error("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		t.Errorf("hash does not verify against the generated password: %v", err)
	}
}
