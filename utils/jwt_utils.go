package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey reads the signing secret per call, so values loaded from .env after
// package init are picked up. Issuer and validator share this one source.
func jwtKey() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	UserModel string `json:"userModel"`
	jwt.RegisteredClaims
}

func GenerateToken(email, role, userModel string) (string, error) {
	claims := &Claims{
		Email:     email,
		Role:      role,
		UserModel: userModel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func ValidateToken(tokenStr string) (*Claims, error) {
	claims, err := parseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token has expired")
	}
	return claims, nil
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
