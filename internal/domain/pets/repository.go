package pets

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner ordena por created_at desc.
	ListByOwner(ctx context.Context, userID string) ([]Pet, error)
	// Delete filtra por dueño; borrar algo inexistente no es error.
	Delete(ctx context.Context, id, userID string) error
}
