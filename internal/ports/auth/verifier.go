package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken: el proveedor rechazó la credencial.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrProviderUnavailable: no se pudo consultar al proveedor.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
