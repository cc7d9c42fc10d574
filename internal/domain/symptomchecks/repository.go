package symptomchecks

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("symptom check not found")

type Repository interface {
	// ListByPet ordena por created_at desc.
	ListByPet(ctx context.Context, petID string) ([]Check, error)
	Get(ctx context.Context, id string) (Detail, error)
	Create(ctx context.Context, c Check) error
}
