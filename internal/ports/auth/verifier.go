package auth

import "context"

// AuthVerifier verifica un access token y devuelve claims o error.
// El core trata el user id resultante como partition key opaca:
// acá no hay lógica de identidad.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
