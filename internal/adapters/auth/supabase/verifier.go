package supabase

import (
	"context"
	"errors"
	"strings"

	"nursebot-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier verificando el JWT de Supabase
// localmente con el JWT secret del proyecto (HS256). Evita un round
// trip al upstream por request.
type Verifier struct {
	secret []byte
}

func NewVerifier(jwtSecret string) *Verifier {
	return &Verifier{secret: []byte(jwtSecret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	t, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !t.Valid {
		return auth.Claims{}, ErrUnauthorized
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("token missing sub claim")
	}

	email, _ := claims["email"].(string)

	return auth.Claims{
		UserID: sub,
		Email:  email,
	}, nil
}
