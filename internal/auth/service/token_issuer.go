package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/observability/metrics"
)

// TokenIssuer signs a compact claims payload with a shared secret. The claims
// carry only id, username and email. No exp claim is set: issued tokens do
// not expire (see DESIGN.md for the decision record).
type TokenIssuer struct {
	jwtSecret []byte
}

func NewTokenIssuer(jwtSecret string) *TokenIssuer {
	return &TokenIssuer{jwtSecret: []byte(jwtSecret)}
}

func (ti *TokenIssuer) IssueToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssued.Inc()
	return tokenString, nil
}
