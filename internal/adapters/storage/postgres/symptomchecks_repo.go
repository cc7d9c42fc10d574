package postgres

import (
	"context"
	"database/sql"

	"woofy-api/internal/domain/symptomchecks"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type checkRepo struct {
	db *sql.DB
}

func (r *checkRepo) ListByPet(ctx context.Context, petID string) ([]symptomchecks.Check, error) {
	rows, err := query(ctx, r.db, dialect.From("symptom_checks").Prepared(true).
		Select("id", "pet_id", "symptoms", "triage_level", "advice", "next_actions", "created_at").
		Where(goqu.C("pet_id").Eq(petID)).
		Order(goqu.I("created_at").Desc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]symptomchecks.Check, 0)
	for rows.Next() {
		var (
			c       symptomchecks.Check
			level   string
			actions pq.StringArray
		)
		if err := rows.Scan(&c.ID, &c.PetID, &c.Symptoms, &level, &c.Advice, &actions, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.TriageLevel = symptomchecks.TriageLevel(level)
		c.NextActions = []string(actions)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *checkRepo) Get(ctx context.Context, id string) (symptomchecks.Detail, error) {
	row, err := queryRow(ctx, r.db, dialect.From(goqu.T("symptom_checks").As("sc")).Prepared(true).
		Join(goqu.T("pets").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("sc.pet_id")))).
		Select(
			"sc.id", "sc.pet_id", "sc.symptoms", "sc.triage_level", "sc.advice", "sc.next_actions", "sc.created_at",
			"p.id", "p.name", "p.breed", "p.user_id",
		).
		Where(goqu.Ex{"sc.id": id}))
	if err != nil {
		return symptomchecks.Detail{}, err
	}

	var (
		d       symptomchecks.Detail
		level   string
		actions pq.StringArray
	)
	if err := row.Scan(
		&d.ID, &d.PetID, &d.Symptoms, &level, &d.Advice, &actions, &d.CreatedAt,
		&d.Pet.ID, &d.Pet.Name, &d.Pet.Breed, &d.Pet.UserID,
	); err != nil {
		return symptomchecks.Detail{}, notFound(err, symptomchecks.ErrNotFound)
	}
	d.TriageLevel = symptomchecks.TriageLevel(level)
	d.NextActions = []string(actions)
	return d, nil
}

func (r *checkRepo) Create(ctx context.Context, c symptomchecks.Check) error {
	_, err := exec(ctx, r.db, dialect.Insert("symptom_checks").Prepared(true).Rows(goqu.Record{
		"id":           c.ID,
		"pet_id":       c.PetID,
		"symptoms":     c.Symptoms,
		"triage_level": string(c.TriageLevel),
		"advice":       c.Advice,
		"next_actions": stringArray(c.NextActions),
		"created_at":   c.CreatedAt,
	}))
	return err
}
