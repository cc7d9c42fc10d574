package postgres

import (
	"context"
	"database/sql"
	"time"

	"woofy-api/internal/domain/reminders"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type reminderRepo struct {
	db *sql.DB
}

func (r *reminderRepo) ListForUser(ctx context.Context, userID string, f reminders.ListFilter) ([]reminders.WithPet, error) {
	ds := remindersWithPet().Where(goqu.I("p.user_id").Eq(userID))
	if f.Type != nil {
		ds = ds.Where(goqu.I("r.type").Eq(string(*f.Type)))
	}
	if f.From != nil {
		ds = ds.Where(goqu.I("r.due_at").Gte(*f.From))
	}
	return r.listWithPet(ctx, ds.Order(goqu.I("r.due_at").Asc()))
}

func (r *reminderRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	rows, err := query(ctx, r.db, remindersWithPet().
		Where(goqu.I("r.pet_id").Eq(petID)).
		Order(goqu.I("r.due_at").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		w, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w.Reminder)
	}
	return out, rows.Err()
}

func (r *reminderRepo) Get(ctx context.Context, id string) (reminders.WithPet, error) {
	row, err := queryRow(ctx, r.db, remindersWithPet().Where(goqu.I("r.id").Eq(id)))
	if err != nil {
		return reminders.WithPet{}, err
	}
	w, err := scanReminder(row)
	if err != nil {
		return reminders.WithPet{}, notFound(err, reminders.ErrNotFound)
	}
	return w, nil
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := exec(ctx, r.db, dialect.Insert("reminders").Prepared(true).Rows(goqu.Record{
		"id":          rem.ID,
		"pet_id":      rem.PetID,
		"title":       rem.Title,
		"description": rem.Description,
		"due_at":      rem.DueAt,
		"type":        string(rem.Type),
		"is_sent":     rem.IsSent,
		"created_at":  rem.CreatedAt,
		"updated_at":  rem.UpdatedAt,
	}))
	return err
}

func (r *reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	n, err := exec(ctx, r.db, dialect.Update("reminders").Prepared(true).
		Set(goqu.Record{
			"title":       rem.Title,
			"description": rem.Description,
			"due_at":      rem.DueAt,
			"type":        string(rem.Type),
			"is_sent":     rem.IsSent,
			"updated_at":  rem.UpdatedAt,
		}).
		Where(goqu.Ex{"id": rem.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	_, err := exec(ctx, r.db, dialect.Delete("reminders").Prepared(true).
		Where(goqu.Ex{"id": id}))
	return err
}

func (r *reminderRepo) ListDue(ctx context.Context, until time.Time, after *reminders.DueCursor, limit int) ([]reminders.WithPet, error) {
	return r.listWithPet(ctx, dueReminders(until, after, limit))
}

// dueReminders pagina por keyset sobre (due_at, id).
func dueReminders(until time.Time, after *reminders.DueCursor, limit int) *goqu.SelectDataset {
	conds := []exp.Expression{goqu.I("r.is_sent").IsFalse(), goqu.I("r.due_at").Lte(until)}
	if after != nil {
		conds = append(conds, goqu.Or(
			goqu.I("r.due_at").Gt(after.DueAt),
			goqu.And(goqu.I("r.due_at").Eq(after.DueAt), goqu.I("r.id").Gt(after.ID)),
		))
	}
	ds := remindersWithPet().Where(conds...).Order(goqu.I("r.due_at").Asc(), goqu.I("r.id").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	return ds
}

func (r *reminderRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	n, err := exec(ctx, r.db, dialect.Update("reminders").Prepared(true).
		Set(goqu.Record{"is_sent": true, "updated_at": at}).
		Where(goqu.Ex{"id": id}))
	if err != nil {
		return err
	}
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *reminderRepo) listWithPet(ctx context.Context, ds *goqu.SelectDataset) ([]reminders.WithPet, error) {
	rows, err := query(ctx, r.db, ds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.WithPet, 0)
	for rows.Next() {
		w, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func remindersWithPet() *goqu.SelectDataset {
	return dialect.From(goqu.T("reminders").As("r")).Prepared(true).
		Join(goqu.T("pets").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("r.pet_id")))).
		Select(
			"r.id", "r.pet_id", "r.title", "r.description", "r.due_at", "r.type", "r.is_sent",
			"r.created_at", "r.updated_at",
			"p.id", "p.name", "p.breed", "p.photo_url", "p.user_id",
		)
}

func scanReminder(s scanner) (reminders.WithPet, error) {
	var (
		w    reminders.WithPet
		kind string
	)
	err := s.Scan(
		&w.ID, &w.PetID, &w.Title, &w.Description, &w.DueAt, &kind, &w.IsSent,
		&w.CreatedAt, &w.UpdatedAt,
		&w.Pet.ID, &w.Pet.Name, &w.Pet.Breed, &w.Pet.PhotoURL, &w.Pet.UserID,
	)
	w.Type = reminders.Type(kind)
	return w, err
}
