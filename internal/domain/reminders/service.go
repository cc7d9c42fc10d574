package reminders

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
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	DueAt       time.Time `json:"due_at" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=vaccine deworm antiflea checkup grooming other"`
}

type UpdateInput struct {
	Title       patch.Field[string]    `json:"title"`
	Description patch.Field[string]    `json:"description"`
	DueAt       patch.Field[time.Time] `json:"due_at"`
	Type        patch.Field[string]    `json:"type"`
	IsSent      patch.Field[bool]      `json:"is_sent"`
}

func (in UpdateInput) validate() error {
	var c validate.Checker
	if in.Title.Set {
		c.Var("title", strings.TrimSpace(in.Title.Value), "required,min=1,max=200")
	}
	if in.Description.HasValue() {
		c.Var("description", in.Description.Value, "max=2000")
	}
	if in.DueAt.Set && !in.DueAt.HasValue() {
		c.Add("due_at", "es requerido")
	}
	if in.Type.Set {
		c.Var("type", in.Type.Value, "required,oneof="+typeList)
	}
	if in.IsSent.Set && !in.IsSent.HasValue() {
		c.Add("is_sent", "es requerido")
	}
	return c.Err()
}

// List devuelve los recordatorios de todas las mascotas del usuario.
func (s *Service) List(ctx context.Context, userID string, upcoming bool, typ string) ([]WithPet, error) {
	var f ListFilter
	if typ = strings.TrimSpace(typ); typ != "" {
		t := Type(typ)
		if !t.Valid() {
			return nil, apperrors.Validation("Tipo inválido", apperrors.FieldError{
				Field:   "type",
				Message: "debe ser uno de: " + strings.ReplaceAll(typeList, " ", ", "),
			})
		}
		f.Type = &t
	}
	if upcoming {
		now := s.now()
		f.From = &now
	}

	items, err := s.repo.ListForUser(ctx, userID, f)
	if err != nil {
		return nil, apperrors.Internal("error al obtener recordatorios", err)
	}
	return items, nil
}

func (s *Service) ListByPet(ctx context.Context, userID, petID string) ([]Reminder, error) {
	if _, err := s.pets.RequireOwned(ctx, userID, petID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, apperrors.Internal("error al obtener recordatorios", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (WithPet, error) {
	rem, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return WithPet{}, errNotFound()
	}
	if err != nil {
		return WithPet{}, apperrors.Internal("error al obtener recordatorio", err)
	}
	if rem.Pet.UserID != userID {
		return WithPet{}, errNotFound()
	}
	return rem, nil
}

// Create: una mascota ajena se reporta como NotFound.
func (s *Service) Create(ctx context.Context, userID, petID string, in CreateInput) (Reminder, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Struct(in); err != nil {
		return Reminder{}, err
	}
	if _, err := s.pets.RequireOwned(ctx, userID, petID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return Reminder{}, apperrors.NotFound("La mascota no pertenece al usuario")
		}
		return Reminder{}, err
	}

	now := s.now()
	rem := Reminder{
		ID:          uuid.NewString(),
		PetID:       petID,
		Title:       in.Title,
		Description: in.Description,
		DueAt:       in.DueAt.UTC(),
		Type:        Type(in.Type),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, rem); err != nil {
		return Reminder{}, apperrors.Internal("error al crear recordatorio", err)
	}
	return rem, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Reminder, error) {
	if err := in.validate(); err != nil {
		return Reminder{}, err
	}

	cur, err := s.Get(ctx, userID, id)
	if err != nil {
		return Reminder{}, err
	}

	rem := cur.Reminder
	if in.Title.HasValue() {
		rem.Title = strings.TrimSpace(in.Title.Value)
	}
	in.Description.Apply(&rem.Description)
	if in.DueAt.HasValue() {
		rem.DueAt = in.DueAt.Value.UTC()
	}
	if in.Type.HasValue() {
		rem.Type = Type(in.Type.Value)
	}
	in.IsSent.ApplyValue(&rem.IsSent)
	rem.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rem); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reminder{}, errNotFound()
		}
		return Reminder{}, apperrors.Internal("error al actualizar recordatorio", err)
	}
	return rem, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("error al eliminar recordatorio", err)
	}
	return nil
}

func errNotFound() error {
	return apperrors.NotFound("Recordatorio no encontrado")
}
