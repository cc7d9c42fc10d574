package symptomchecks

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/validate"

	"github.com/google/uuid"
)

type PetOwnership interface {
	RequireOwned(ctx context.Context, userID, petID string) (pets.Pet, error)
}

type Service struct {
	repo     Repository
	pets     PetOwnership
	analyzer *Analyzer
	now      func() time.Time
}

func NewService(repo Repository, pets PetOwnership, analyzer *Analyzer) *Service {
	return &Service{repo: repo, pets: pets, analyzer: analyzer, now: time.Now}
}

type CreateInput struct {
	Symptoms string `json:"symptoms" validate:"required,min=10,max=2000"`
}

func (s *Service) ListByPet(ctx context.Context, userID, petID string) ([]Check, error) {
	if _, err := s.pets.RequireOwned(ctx, userID, petID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, apperrors.Internal("error al obtener chequeos de síntomas", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Detail, error) {
	d, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Detail{}, errNotFound()
	}
	if err != nil {
		return Detail{}, apperrors.Internal("error al obtener chequeo de síntomas", err)
	}
	if d.Pet.UserID != userID {
		return Detail{}, errNotFound()
	}
	return d, nil
}

// Create analiza los síntomas, persiste el chequeo y devuelve además las
// causas posibles, que no se guardan.
func (s *Service) Create(ctx context.Context, userID, petID string, in CreateInput) (Result, error) {
	in.Symptoms = strings.TrimSpace(in.Symptoms)
	if err := validate.Struct(in); err != nil {
		return Result{}, err
	}

	pet, err := s.pets.RequireOwned(ctx, userID, petID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return Result{}, apperrors.Validation("La mascota no pertenece al usuario")
		}
		return Result{}, err
	}

	a, err := s.analyzer.Analyze(ctx, pet, in.Symptoms)
	if err != nil {
		return Result{}, err
	}

	c := Check{
		ID:          uuid.NewString(),
		PetID:       pet.ID,
		Symptoms:    in.Symptoms,
		TriageLevel: a.TriageLevel,
		Advice:      a.Advice,
		NextActions: a.NextActions,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Result{}, apperrors.Internal("error al guardar chequeo de síntomas", err)
	}
	return Result{Check: c, PossibleCauses: a.PossibleCauses}, nil
}

func errNotFound() error {
	return apperrors.NotFound("Chequeo de síntomas no encontrado")
}
