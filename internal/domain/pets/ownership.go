package pets

import (
	"context"
	"errors"

	"woofy-api/internal/platform/apperrors"
)

// RequireOwned es el predicado de autorización para todo lo que cuelga de
// una mascota: inexistente y ajena devuelven el mismo NotFound.
func (s *Service) RequireOwned(ctx context.Context, userID, petID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if errors.Is(err, ErrNotFound) {
		return Pet{}, errNotFound()
	}
	if err != nil {
		return Pet{}, apperrors.Internal("error al obtener mascota", err)
	}
	if p.UserID != userID {
		return Pet{}, errNotFound()
	}
	return p, nil
}

func errNotFound() error {
	return apperrors.NotFound("Mascota no encontrada")
}
