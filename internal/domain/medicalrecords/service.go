package medicalrecords

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"
	"woofy-api/internal/platform/validate"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type PetOwnership interface {
	RequireOwned(ctx context.Context, userID, petID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetOwnership
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwnership) *Service {
	return &Service{repo: repo, pets: pets, now: time.Now}
}

type CreateInput struct {
	Type        string   `json:"type" validate:"required,oneof=vaccine deworm antiflea surgery allergy weight other"`
	Date        string   `json:"date" validate:"required"`
	Notes       *string  `json:"notes" validate:"omitempty,max=2000"`
	Attachments []string `json:"attachments" validate:"omitempty,dive,url"`
}

type UpdateInput struct {
	Type        patch.Field[string]   `json:"type"`
	Date        patch.Field[string]   `json:"date"`
	Notes       patch.Field[string]   `json:"notes"`
	Attachments patch.Field[[]string] `json:"attachments"`
}

// ParseDate acepta YYYY-MM-DD o RFC 3339; se guarda sólo el día.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func (s *Service) ListByPet(ctx context.Context, userID, petID, typ string) ([]Record, error) {
	var filter *Type
	if typ = strings.TrimSpace(typ); typ != "" {
		t := Type(typ)
		if !t.Valid() {
			return nil, invalidType()
		}
		filter = &t
	}
	if _, err := s.pets.RequireOwned(ctx, userID, petID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByPet(ctx, petID, filter)
	if err != nil {
		return nil, apperrors.Internal("error al obtener registros médicos", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Detail{}, errNotFound()
	}
	if err != nil {
		return Detail{}, apperrors.Internal("error al obtener registro médico", err)
	}
	if d.Pet.UserID != userID {
		return Detail{}, errNotFound()
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, userID, petID string, in CreateInput) (Record, error) {
	if err := validate.Struct(in); err != nil {
		return Record{}, err
	}
	date, ok := ParseDate(in.Date)
	if !ok {
		return Record{}, invalidDate()
	}
	if _, err := s.pets.RequireOwned(ctx, userID, petID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return Record{}, apperrors.Validation("La mascota no pertenece al usuario")
		}
		return Record{}, err
	}

	now := s.now()
	rec := Record{
		ID:          uuid.NewString(),
		PetID:       petID,
		Type:        Type(in.Type),
		Date:        date,
		Notes:       in.Notes,
		Attachments: attachments(in.Attachments),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, apperrors.Internal("error al crear registro médico", err)
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Record, error) {
	var c validate.Checker
	if in.Type.Set {
		c.Var("type", in.Type.Value, "required,oneof="+typeList)
	}
	var date time.Time
	if in.Date.Set {
		d, ok := ParseDate(in.Date.Value)
		if !ok {
			c.Add("date", "debe ser una fecha válida (YYYY-MM-DD)")
		}
		date = d
	}
	if in.Notes.HasValue() {
		c.Var("notes", in.Notes.Value, "max=2000")
	}
	if in.Attachments.HasValue() {
		c.Var("attachments", in.Attachments.Value, "dive,url")
	}
	if err := c.Err(); err != nil {
		return Record{}, err
	}

	cur, err := s.Get(ctx, userID, id)
	if err != nil {
		return Record{}, err
	}

	rec := cur.Record
	if in.Type.HasValue() {
		rec.Type = Type(in.Type.Value)
	}
	if in.Date.HasValue() {
		rec.Date = date
	}
	in.Notes.Apply(&rec.Notes)
	if in.Attachments.Set {
		rec.Attachments = attachments(in.Attachments.Value)
	}
	rec.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, errNotFound()
		}
		return Record{}, apperrors.Internal("error al actualizar registro médico", err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("error al eliminar registro médico", err)
	}
	return nil
}

func attachments(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func errNotFound() error {
	return apperrors.NotFound("Registro médico no encontrado")
}

func invalidType() error {
	return apperrors.Validation("Tipo inválido", apperrors.FieldError{
		Field:   "type",
		Message: "debe ser uno de: " + strings.ReplaceAll(typeList, " ", ", "),
	})
}

func invalidDate() error {
	return apperrors.Validation(validate.Message, apperrors.FieldError{
		Field:   "date",
		Message: "debe ser una fecha válida (YYYY-MM-DD)",
	})
}
