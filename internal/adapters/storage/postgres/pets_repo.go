package postgres

import (
	"context"
	"database/sql"
	"strings"

	"woofy-api/internal/domain/pets"

	"github.com/doug-martin/goqu/v9"
)

type petRepo struct {
	db *sql.DB
}

var petColumns = []any{
	"id", "user_id",
	"name", "breed", "age_months", "weight_kg", "photo_url",
	"created_at", "updated_at",
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := exec(ctx, r.db, dialect.Insert("pets").Prepared(true).Rows(goqu.Record{
		"id":         p.ID,
		"user_id":    p.UserID,
		"name":       p.Name,
		"breed":      p.Breed,
		"age_months": p.AgeMonths,
		"weight_kg":  p.WeightKg,
		"photo_url":  p.PhotoURL,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}))
	return err
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	n, err := exec(ctx, r.db, dialect.Update("pets").Prepared(true).
		Set(goqu.Record{
			"name":       p.Name,
			"breed":      p.Breed,
			"age_months": p.AgeMonths,
			"weight_kg":  p.WeightKg,
			"photo_url":  p.PhotoURL,
			"updated_at": p.UpdatedAt,
		}).
		Where(goqu.Ex{"id": p.ID, "user_id": p.UserID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row, err := queryRow(ctx, r.db, dialect.From("pets").Prepared(true).
		Select(petColumns...).
		Where(goqu.Ex{"id": id}))
	if err != nil {
		return pets.Pet{}, err
	}
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, notFound(err, pets.ErrNotFound)
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := query(ctx, r.db, dialect.From("pets").Prepared(true).
		Select(petColumns...).
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra en cascada (FK) registros, recordatorios, chequeos y citas.
func (r *petRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := exec(ctx, r.db, dialect.Delete("pets").Prepared(true).
		Where(goqu.Ex{"id": id, "user_id": userID}))
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Breed,
		&p.AgeMonths,
		&p.WeightKg,
		&p.PhotoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
