// Package session holds the typed per-login context: role, numeric identity
// and the flagged bit. It is populated exactly once at login and carried in
// a signed token, never re-derived per request, so a flag raised mid-session
// only takes effect at the next login.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sponnect/sponnect/pkg/models"
)

type Session struct {
	Role    models.Role `json:"role"`
	UserID  int64       `json:"uid"`
	Name    string      `json:"name,omitempty"`
	Flagged bool        `json:"flagged"`
}

// Mint signs the session into an HS256 token valid for dur.
func Mint(s *Session, secret string, dur time.Duration) (string, error) {
	if s == nil {
		return "", fmt.Errorf("session is nil")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":    string(s.Role),
		"uid":     s.UserID,
		"name":    s.Name,
		"flagged": s.Flagged,
		"exp":     time.Now().Add(dur).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// Parse verifies the token signature and expiry and rebuilds the session.
func Parse(tokenStr, secret string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	roleStr, _ := claims["role"].(string)
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid role claim: %w", err)
	}

	uidF, ok := claims["uid"].(float64)
	if !ok || uidF <= 0 {
		return nil, fmt.Errorf("invalid uid claim")
	}

	s := &Session{
		Role:   role,
		UserID: int64(uidF),
	}
	if name, ok := claims["name"].(string); ok {
		s.Name = name
	}
	if flagged, ok := claims["flagged"].(bool); ok {
		s.Flagged = flagged
	}

	return s, nil
}
