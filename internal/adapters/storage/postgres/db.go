package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"woofy-api/internal/domain/aichat"
	"woofy-api/internal/domain/appointments"
	"woofy-api/internal/domain/clinics"
	"woofy-api/internal/domain/medicalrecords"
	"woofy-api/internal/domain/pets"
	"woofy-api/internal/domain/profiles"
	"woofy-api/internal/domain/reminders"
	"woofy-api/internal/domain/symptomchecks"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

var dialect = goqu.Dialect("postgres")

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Store expone los repos de cada dominio sobre la misma conexión.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Profiles() profiles.Repository             { return &profileRepo{s.db} }
func (s *Store) Pets() pets.Repository                     { return &petRepo{s.db} }
func (s *Store) Clinics() clinics.Repository               { return &clinicRepo{s.db} }
func (s *Store) Appointments() appointments.Repository     { return &appointmentRepo{s.db} }
func (s *Store) MedicalRecords() medicalrecords.Repository { return &recordRepo{s.db} }
func (s *Store) Reminders() reminders.Repository           { return &reminderRepo{s.db} }
func (s *Store) SymptomChecks() symptomchecks.Repository   { return &checkRepo{s.db} }
func (s *Store) Chat() aichat.Repository                   { return &chatRepo{s.db} }

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func exec(ctx context.Context, db *sql.DB, b sqlBuilder) (int64, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func query(ctx context.Context, db *sql.DB, b sqlBuilder) (*sql.Rows, error) {
	q, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, q, args...)
}

func queryRow(ctx context.Context, db *sql.DB, b sqlBuilder) (*sql.Row, error) {
	q, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.QueryRowContext(ctx, q, args...), nil
}

// notFound traduce sql.ErrNoRows al sentinel del dominio.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// stringArray evita mandar NULL a columnas text[] NOT NULL.
func stringArray(v []string) pq.StringArray {
	if v == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(v)
}
