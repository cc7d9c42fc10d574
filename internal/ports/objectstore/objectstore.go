package objectstore

import (
	"context"
	"errors"
	"io"
)

var ErrNotConfigured = errors.New("object storage not configured")

// Store guarda objetos y devuelve su URL pública.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
