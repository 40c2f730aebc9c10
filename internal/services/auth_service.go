package services

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

// TokenVerifier is the external identity collaborator: it resolves a
// bearer token to the provider's stable identity string or rejects it.
// The service itself never mints or validates credentials beyond this.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTVerifier verifies HS256-signed identity tokens. The identity string
// is read from the "sub" claim, falling back to "user_id".
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWTVerifier.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the identity string.
func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID, nil
	}
	return "", fmt.Errorf("token carries no identity claim")
}

// StaticVerifier accepts development tokens of the form "user_<anything>"
// and uses the token itself as the identity, matching the development
// mode of the upstream identity integration. Never use outside tests or
// local development.
type StaticVerifier struct{}

// Verify resolves a development token.
func (StaticVerifier) Verify(token string) (string, error) {
	if strings.HasPrefix(token, "user_") {
		return token, nil
	}
	return "", fmt.Errorf("invalid token")
}
