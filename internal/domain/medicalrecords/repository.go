package medicalrecords

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("medical record not found")

type Repository interface {
	// ListByPet ordena por date desc.
	ListByPet(ctx context.Context, petID string, typ *Type) ([]Record, error)
	// Get proyecta la mascota dueña del registro.
	Get(ctx context.Context, id string) (Detail, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
}
