package clinics

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("clinic not found")

type ListFilter struct {
	// IsActive nil = sin filtro.
	IsActive *bool
	// Limit 0 = sin paginar.
	Limit  int
	Offset int
}

type Repository interface {
	// List ordena por rating desc y devuelve el total sin paginar.
	List(ctx context.Context, f ListFilter) ([]Clinic, int, error)
	GetByID(ctx context.Context, id string) (Clinic, error)
	// ListServices devuelve sólo activos, por category.
	ListServices(ctx context.Context, clinicID string) ([]Service, error)
	// ListHours ordena por day_of_week.
	ListHours(ctx context.Context, clinicID string) ([]Hours, error)
}
