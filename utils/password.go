package utils

import (
	"crypto/rand"
	"encoding/hex"

	exprand "golang.org/x/exp/rand"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomPassword creates a random 10 character password.
func GenerateRandomPassword() string {
	password := make([]byte, 10)
	for i := range password {
		password[i] = passwordCharset[exprand.Intn(len(passwordCharset))]
	}
	return string(password)
}

// GenerateResetToken creates an unguessable hex token for password resets.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
