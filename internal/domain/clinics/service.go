package clinics

import (
	"context"
	"errors"

	"woofy-api/internal/platform/apperrors"
)

type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

type Page struct {
	Items []Clinic
	Total int
}

func (c *Catalog) List(ctx context.Context, f ListFilter) (Page, error) {
	items, total, err := c.repo.List(ctx, f)
	if err != nil {
		return Page{}, apperrors.Internal("error al obtener clínicas", err)
	}
	return Page{Items: items, Total: total}, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (Clinic, error) {
	cl, err := c.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Clinic{}, apperrors.NotFound("Clínica no encontrada")
	}
	if err != nil {
		return Clinic{}, apperrors.Internal("error al obtener clínica", err)
	}
	return cl, nil
}

func (c *Catalog) Services(ctx context.Context, clinicID string) ([]Service, error) {
	items, err := c.repo.ListServices(ctx, clinicID)
	if err != nil {
		return nil, apperrors.Internal("error al obtener servicios", err)
	}
	return items, nil
}

func (c *Catalog) Hours(ctx context.Context, clinicID string) ([]Hours, error) {
	items, err := c.repo.ListHours(ctx, clinicID)
	if err != nil {
		return nil, apperrors.Internal("error al obtener horarios", err)
	}
	return items, nil
}
