package postgres

import (
	"context"
	"database/sql"

	"woofy-api/internal/domain/profiles"

	"github.com/doug-martin/goqu/v9"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	row, err := queryRow(ctx, r.db, dialect.From("profiles").Prepared(true).
		Select("id", "email", "name", "phone", "avatar_url", "created_at", "updated_at").
		Where(goqu.Ex{"id": id}))
	if err != nil {
		return profiles.Profile{}, err
	}

	var p profiles.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profiles.Profile{}, notFound(err, profiles.ErrNotFound)
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := exec(ctx, r.db, dialect.Insert("profiles").Prepared(true).Rows(goqu.Record{
		"id":         p.ID,
		"email":      p.Email,
		"name":       p.Name,
		"phone":      p.Phone,
		"avatar_url": p.AvatarURL,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}))
	return err
}

func (r *profileRepo) Update(ctx context.Context, p profiles.Profile) error {
	n, err := exec(ctx, r.db, dialect.Update("profiles").Prepared(true).
		Set(goqu.Record{
			"email":      p.Email,
			"name":       p.Name,
			"phone":      p.Phone,
			"avatar_url": p.AvatarURL,
			"updated_at": p.UpdatedAt,
		}).
		Where(goqu.Ex{"id": p.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}
