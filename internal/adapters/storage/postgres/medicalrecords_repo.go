package postgres

import (
	"context"
	"database/sql"

	"woofy-api/internal/domain/medicalrecords"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type recordRepo struct {
	db *sql.DB
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string, typ *medicalrecords.Type) ([]medicalrecords.Record, error) {
	ds := dialect.From("medical_records").Prepared(true).
		Select("id", "pet_id", "type", "date", "notes", "attachments", "created_at", "updated_at").
		Where(goqu.C("pet_id").Eq(petID))
	if typ != nil {
		ds = ds.Where(goqu.C("type").Eq(string(*typ)))
	}

	rows, err := query(ctx, r.db, ds.Order(goqu.I("date").Desc(), goqu.I("created_at").Desc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicalrecords.Record, 0)
	for rows.Next() {
		var (
			rec         medicalrecords.Record
			kind        string
			attachments pq.StringArray
		)
		if err := rows.Scan(&rec.ID, &rec.PetID, &kind, &rec.Date, &rec.Notes, &attachments,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Type = medicalrecords.Type(kind)
		rec.Attachments = []string(attachments)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recordRepo) Get(ctx context.Context, id string) (medicalrecords.Detail, error) {
	row, err := queryRow(ctx, r.db, dialect.From(goqu.T("medical_records").As("m")).Prepared(true).
		Join(goqu.T("pets").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("m.pet_id")))).
		Select(
			"m.id", "m.pet_id", "m.type", "m.date", "m.notes", "m.attachments", "m.created_at", "m.updated_at",
			"p.id", "p.name", "p.breed", "p.user_id",
		).
		Where(goqu.Ex{"m.id": id}))
	if err != nil {
		return medicalrecords.Detail{}, err
	}

	var (
		d           medicalrecords.Detail
		typ         string
		attachments pq.StringArray
	)
	if err := row.Scan(
		&d.ID, &d.PetID, &typ, &d.Date, &d.Notes, &attachments, &d.CreatedAt, &d.UpdatedAt,
		&d.Pet.ID, &d.Pet.Name, &d.Pet.Breed, &d.Pet.UserID,
	); err != nil {
		return medicalrecords.Detail{}, notFound(err, medicalrecords.ErrNotFound)
	}
	d.Type = medicalrecords.Type(typ)
	d.Attachments = []string(attachments)
	return d, nil
}

func (r *recordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	_, err := exec(ctx, r.db, dialect.Insert("medical_records").Prepared(true).Rows(goqu.Record{
		"id":          rec.ID,
		"pet_id":      rec.PetID,
		"type":        string(rec.Type),
		"date":        rec.Date.Format("2006-01-02"),
		"notes":       rec.Notes,
		"attachments": stringArray(rec.Attachments),
		"created_at":  rec.CreatedAt,
		"updated_at":  rec.UpdatedAt,
	}))
	return err
}

func (r *recordRepo) Update(ctx context.Context, rec medicalrecords.Record) error {
	n, err := exec(ctx, r.db, dialect.Update("medical_records").Prepared(true).
		Set(goqu.Record{
			"type":        string(rec.Type),
			"date":        rec.Date.Format("2006-01-02"),
			"notes":       rec.Notes,
			"attachments": stringArray(rec.Attachments),
			"updated_at":  rec.UpdatedAt,
		}).
		Where(goqu.Ex{"id": rec.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return medicalrecords.ErrNotFound
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	_, err := exec(ctx, r.db, dialect.Delete("medical_records").Prepared(true).
		Where(goqu.Ex{"id": id}))
	return err
}
