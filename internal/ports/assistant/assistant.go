package assistant

import "context"

// Assistant es el servicio de chat remoto, tratado como caja negra:
// un request unario {message} -> {reply}.
type Assistant interface {
	Reply(ctx context.Context, message string) (string, error)
}
