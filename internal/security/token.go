package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token for a user.
// Used by local/dev sessions and tests; production tokens come from
// the auth collaborator.
func GenerateSessionToken(userID, username, secret string) (string, error) {
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken verifies the signature and expiry of a session
// token and returns its claims.
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// TokenUsable reports whether a bearer token is present and not past
// its expiry. The signature is not checked here: the server is the
// authority, this only avoids sending calls that are guaranteed to be
// rejected.
func TokenUsable(tokenString string, now time.Time) bool {
	if tokenString == "" {
		return false
	}

	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		// Opaque (non-JWT) tokens are passed through; the server decides.
		return true
	}

	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}
