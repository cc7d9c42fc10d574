package pets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"
	"woofy-api/internal/platform/validate"
	"woofy-api/internal/ports/objectstore"

	"github.com/google/uuid"
)

const MaxPhotoBytes = 5 << 20

type Service struct {
	repo   Repository
	photos objectstore.Store
	now    func() time.Time
}

// NewService: photos puede ser nil (upload responde 503).
func NewService(repo Repository, photos objectstore.Store) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	Breed     *string  `json:"breed" validate:"omitempty,max=100"`
	AgeMonths *int     `json:"age_months" validate:"omitempty,gte=0,lte=300"`
	WeightKg  *float64 `json:"weight_kg" validate:"omitempty,gte=0,lte=500"`
	PhotoURL  *string  `json:"photo_url" validate:"omitempty,url"`
}

type UpdateInput struct {
	Name      patch.Field[string]  `json:"name"`
	Breed     patch.Field[string]  `json:"breed"`
	AgeMonths patch.Field[int]     `json:"age_months"`
	WeightKg  patch.Field[float64] `json:"weight_kg"`
	PhotoURL  patch.Field[string]  `json:"photo_url"`
}

func (in UpdateInput) validate() error {
	var c validate.Checker
	if in.Name.Set {
		c.Var("name", strings.TrimSpace(in.Name.Value), "required,min=1,max=100")
	}
	if in.Breed.HasValue() {
		c.Var("breed", in.Breed.Value, "max=100")
	}
	if in.AgeMonths.HasValue() {
		c.Var("age_months", in.AgeMonths.Value, "gte=0,lte=300")
	}
	if in.WeightKg.HasValue() {
		c.Var("weight_kg", in.WeightKg.Value, "gte=0,lte=500")
	}
	if in.PhotoURL.HasValue() {
		c.Var("photo_url", in.PhotoURL.Value, "url")
	}
	return c.Err()
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Pet, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      in.Name,
		Breed:     trimmed(in.Breed),
		AgeMonths: in.AgeMonths,
		WeightKg:  in.WeightKg,
		PhotoURL:  in.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperrors.Internal("error al crear mascota", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Pet, error) {
	return s.RequireOwned(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("error al listar mascotas", err)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	p, err := s.RequireOwned(ctx, userID, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name.HasValue() {
		p.Name = strings.TrimSpace(in.Name.Value)
	}
	in.Breed.Apply(&p.Breed)
	p.Breed = trimmed(p.Breed)
	in.AgeMonths.Apply(&p.AgeMonths)
	in.WeightKg.Apply(&p.WeightKg)
	in.PhotoURL.Apply(&p.PhotoURL)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, errNotFound()
		}
		return Pet{}, apperrors.Internal("error al actualizar mascota", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return apperrors.Internal("error al eliminar mascota", err)
	}
	return nil
}

// UploadPhoto sube la imagen a pets/{petID}/{uuid}.{ext} y actualiza photo_url.
func (s *Service) UploadPhoto(ctx context.Context, userID, id, filename, contentType string, body io.Reader, size int64) (Pet, error) {
	if s.photos == nil {
		return Pet{}, apperrors.ServiceUnavailable("El almacenamiento de fotos no está disponible temporalmente", objectstore.ErrNotConfigured)
	}

	var c validate.Checker
	if !strings.HasPrefix(contentType, "image/") {
		c.Add("photo", "debe ser una imagen")
	}
	if size <= 0 || size > MaxPhotoBytes {
		c.Add("photo", fmt.Sprintf("debe pesar como máximo %d MB", MaxPhotoBytes>>20))
	}
	if err := c.Err(); err != nil {
		return Pet{}, err
	}

	p, err := s.RequireOwned(ctx, userID, id)
	if err != nil {
		return Pet{}, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = "." + strings.TrimPrefix(contentType, "image/")
	}
	key := fmt.Sprintf("pets/%s/%s%s", p.ID, uuid.NewString(), ext)

	url, err := s.photos.Put(ctx, key, contentType, body, size)
	if err != nil {
		return Pet{}, apperrors.ServiceUnavailable("No se pudo subir la foto", err)
	}

	p.PhotoURL = &url
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, apperrors.Internal("error al actualizar mascota", err)
	}
	return p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
