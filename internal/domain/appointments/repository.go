package appointments

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("appointment not found")

type ListFilter struct {
	Status *Status
	// From filtra starts_at >= From.
	From *time.Time
}

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	// Update filtra por id + user_id.
	Update(ctx context.Context, a Appointment) error
	Get(ctx context.Context, id, userID string) (Detail, error)
	// List ordena por starts_at desc.
	List(ctx context.Context, userID string, f ListFilter) ([]Detail, error)
	Delete(ctx context.Context, id, userID string) error
}
