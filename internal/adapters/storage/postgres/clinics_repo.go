package postgres

import (
	"context"
	"database/sql"

	"woofy-api/internal/domain/clinics"

	"github.com/doug-martin/goqu/v9"
)

type clinicRepo struct {
	db *sql.DB
}

func (r *clinicRepo) List(ctx context.Context, f clinics.ListFilter) ([]clinics.Clinic, int, error) {
	base := dialect.From("clinics").Prepared(true)
	if f.IsActive != nil {
		base = base.Where(goqu.C("is_active").Eq(*f.IsActive))
	}

	row, err := queryRow(ctx, r.db, base.Select(goqu.COUNT("*")))
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	ds := base.
		Select("id", "name", "address", "phone", "email", "latitude", "longitude", "rating", "is_active", "created_at").
		Order(goqu.I("rating").Desc(), goqu.I("name").Asc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}

	rows, err := query(ctx, r.db, ds)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]clinics.Clinic, 0)
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *clinicRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	row, err := queryRow(ctx, r.db, dialect.From("clinics").Prepared(true).
		Select("id", "name", "address", "phone", "email", "latitude", "longitude", "rating", "is_active", "created_at").
		Where(goqu.Ex{"id": id}))
	if err != nil {
		return clinics.Clinic{}, err
	}
	c, err := scanClinic(row)
	if err != nil {
		return clinics.Clinic{}, notFound(err, clinics.ErrNotFound)
	}
	return c, nil
}

func (r *clinicRepo) ListServices(ctx context.Context, clinicID string) ([]clinics.Service, error) {
	rows, err := query(ctx, r.db, dialect.From("services").Prepared(true).
		Select("id", "clinic_id", "name", "category", "description", "base_price", "duration_minutes", "is_active").
		Where(goqu.Ex{"clinic_id": clinicID, "is_active": true}).
		Order(goqu.I("category").Asc(), goqu.I("name").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clinics.Service, 0)
	for rows.Next() {
		var sv clinics.Service
		if err := rows.Scan(&sv.ID, &sv.ClinicID, &sv.Name, &sv.Category, &sv.Description,
			&sv.BasePrice, &sv.DurationMinutes, &sv.IsActive); err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (r *clinicRepo) ListHours(ctx context.Context, clinicID string) ([]clinics.Hours, error) {
	rows, err := query(ctx, r.db, dialect.From("clinic_hours").Prepared(true).
		Select("id", "clinic_id", "day_of_week", "opens_at", "closes_at", "is_closed").
		Where(goqu.Ex{"clinic_id": clinicID}).
		Order(goqu.I("day_of_week").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clinics.Hours, 0)
	for rows.Next() {
		var h clinics.Hours
		if err := rows.Scan(&h.ID, &h.ClinicID, &h.DayOfWeek, &h.OpensAt, &h.ClosesAt, &h.IsClosed); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanClinic(s scanner) (clinics.Clinic, error) {
	var c clinics.Clinic
	err := s.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Latitude, &c.Longitude,
		&c.Rating, &c.IsActive, &c.CreatedAt)
	return c, err
}
