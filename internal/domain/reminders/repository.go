package reminders

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("reminder not found")

type ListFilter struct {
	Type *Type
	// From filtra due_at >= From.
	From *time.Time
}

// DueCursor es la posición (due_at, id) de la última fila vista.
type DueCursor struct {
	DueAt time.Time
	ID    string
}

// After indica si rem va después del cursor en el orden (due_at, id).
func (c DueCursor) After(rem Reminder) bool {
	if !rem.DueAt.Equal(c.DueAt) {
		return rem.DueAt.After(c.DueAt)
	}
	return rem.ID > c.ID
}

type Repository interface {
	// ListForUser recorre todas las mascotas del usuario, due_at asc.
	ListForUser(ctx context.Context, userID string, f ListFilter) ([]WithPet, error)
	// ListByPet ordena por due_at asc.
	ListByPet(ctx context.Context, petID string) ([]Reminder, error)
	Get(ctx context.Context, id string) (WithPet, error)
	Create(ctx context.Context, rem Reminder) error
	Update(ctx context.Context, rem Reminder) error
	Delete(ctx context.Context, id string) error

	// ListDue devuelve los no enviados con due_at <= until, ordenados por
	// (due_at, id) y posteriores a after cuando viene.
	ListDue(ctx context.Context, until time.Time, after *DueCursor, limit int) ([]WithPet, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
}
