package postgres

import (
	"context"
	"database/sql"

	"woofy-api/internal/domain/appointments"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type appointmentRepo struct {
	db *sql.DB
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := exec(ctx, r.db, dialect.Insert("appointments").Prepared(true).Rows(goqu.Record{
		"id":         a.ID,
		"user_id":    a.UserID,
		"pet_id":     a.PetID,
		"clinic_id":  a.ClinicID,
		"service_id": a.ServiceID,
		"starts_at":  a.StartsAt,
		"ends_at":    a.EndsAt,
		"status":     string(a.Status),
		"notes":      a.Notes,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}))
	return err
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	n, err := exec(ctx, r.db, dialect.Update("appointments").Prepared(true).
		Set(goqu.Record{
			"pet_id":     a.PetID,
			"clinic_id":  a.ClinicID,
			"service_id": a.ServiceID,
			"starts_at":  a.StartsAt,
			"ends_at":    a.EndsAt,
			"status":     string(a.Status),
			"notes":      a.Notes,
			"updated_at": a.UpdatedAt,
		}).
		Where(goqu.Ex{"id": a.ID, "user_id": a.UserID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *appointmentRepo) Get(ctx context.Context, id, userID string) (appointments.Detail, error) {
	row, err := queryRow(ctx, r.db, appointmentDetails().
		Where(goqu.Ex{"a.id": id, "a.user_id": userID}))
	if err != nil {
		return appointments.Detail{}, err
	}
	d, err := scanAppointment(row)
	if err != nil {
		return appointments.Detail{}, notFound(err, appointments.ErrNotFound)
	}
	return d, nil
}

func (r *appointmentRepo) List(ctx context.Context, userID string, f appointments.ListFilter) ([]appointments.Detail, error) {
	conds := []exp.Expression{goqu.I("a.user_id").Eq(userID)}
	if f.Status != nil {
		conds = append(conds, goqu.I("a.status").Eq(string(*f.Status)))
	}
	if f.From != nil {
		conds = append(conds, goqu.I("a.starts_at").Gte(*f.From))
	}

	rows, err := query(ctx, r.db, appointmentDetails().
		Where(conds...).
		Order(goqu.I("a.starts_at").Desc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Detail, 0)
	for rows.Next() {
		d, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *appointmentRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := exec(ctx, r.db, dialect.Delete("appointments").Prepared(true).
		Where(goqu.Ex{"id": id, "user_id": userID}))
	return err
}

// appointmentDetails proyecta mascota, clínica y servicio con LEFT JOIN:
// si alguno ya no existe la cita se devuelve igual.
func appointmentDetails() *goqu.SelectDataset {
	return dialect.From(goqu.T("appointments").As("a")).Prepared(true).
		LeftJoin(goqu.T("pets").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.pet_id")))).
		LeftJoin(goqu.T("clinics").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("a.clinic_id")))).
		LeftJoin(goqu.T("services").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("a.service_id")))).
		Select(
			"a.id", "a.user_id", "a.pet_id", "a.clinic_id", "a.service_id",
			"a.starts_at", "a.ends_at", "a.status", "a.notes", "a.created_at", "a.updated_at",
			"p.id", "p.name", "p.breed", "p.photo_url",
			"c.id", "c.name", "c.address", "c.phone",
			"s.id", "s.name", "s.category", "s.base_price", "s.duration_minutes",
		)
}

func scanAppointment(s scanner) (appointments.Detail, error) {
	var (
		d      appointments.Detail
		status string

		petID, petName           sql.NullString
		petBreed, petPhoto       *string
		clinicID, clinicName     sql.NullString
		clinicAddress, clinicTel sql.NullString
		svcID, svcName, svcCat   sql.NullString
		svcPrice                 sql.NullFloat64
		svcMinutes               sql.NullInt64
	)
	err := s.Scan(
		&d.ID, &d.UserID, &d.PetID, &d.ClinicID, &d.ServiceID,
		&d.StartsAt, &d.EndsAt, &status, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
		&petID, &petName, &petBreed, &petPhoto,
		&clinicID, &clinicName, &clinicAddress, &clinicTel,
		&svcID, &svcName, &svcCat, &svcPrice, &svcMinutes,
	)
	if err != nil {
		return appointments.Detail{}, err
	}
	d.Status = appointments.Status(status)

	if petID.Valid {
		d.Pet = &appointments.PetSummary{ID: petID.String, Name: petName.String, Breed: petBreed, PhotoURL: petPhoto}
	}
	if clinicID.Valid {
		d.Clinic = &appointments.ClinicSummary{
			ID:      clinicID.String,
			Name:    clinicName.String,
			Address: clinicAddress.String,
			Phone:   clinicTel.String,
		}
	}
	if svcID.Valid {
		d.Service = &appointments.ServiceSummary{
			ID:              svcID.String,
			Name:            svcName.String,
			Category:        svcCat.String,
			BasePrice:       svcPrice.Float64,
			DurationMinutes: int(svcMinutes.Int64),
		}
	}
	return d, nil
}
