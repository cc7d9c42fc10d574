package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"
	"woofy-api/internal/platform/validate"
)

type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, name string) notifications.Result
}

type Service struct {
	repo    Repository
	welcome WelcomeSender
	now     func() time.Time
}

func NewService(repo Repository, welcome WelcomeSender) *Service {
	return &Service{repo: repo, welcome: welcome, now: time.Now}
}

type UpdateInput struct {
	Name      patch.Field[string] `json:"name"`
	Phone     patch.Field[string] `json:"phone"`
	AvatarURL patch.Field[string] `json:"avatar_url"`
}

func (in UpdateInput) validate() error {
	var c validate.Checker
	if in.Name.HasValue() {
		c.Var("name", strings.TrimSpace(in.Name.Value), "min=2,max=100")
	}
	if in.Phone.HasValue() {
		c.Var("phone", strings.TrimSpace(in.Phone.Value), "max=30")
	}
	if in.AvatarURL.HasValue() {
		c.Var("avatar_url", in.AvatarURL.Value, "url")
	}
	return c.Err()
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, apperrors.NotFound("Perfil no encontrado")
	}
	if err != nil {
		return Profile{}, apperrors.Internal("error al obtener perfil", err)
	}
	return p, nil
}

// Update aplica los campos presentes. Si el perfil aún no existe lo crea con
// el email del token y envía el correo de bienvenida (best-effort).
func (s *Service) Update(ctx context.Context, userID, email string, in UpdateInput) (Profile, error) {
	if err := in.validate(); err != nil {
		return Profile{}, err
	}

	p, err := s.repo.GetByID(ctx, userID)
	created := false
	switch {
	case errors.Is(err, ErrNotFound):
		now := s.now()
		p = Profile{ID: userID, Email: strings.TrimSpace(email), CreatedAt: now}
		created = true
	case err != nil:
		return Profile{}, apperrors.Internal("error al obtener perfil", err)
	}

	in.Name.Apply(&p.Name)
	p.Name = trimmed(p.Name)
	in.Phone.Apply(&p.Phone)
	p.Phone = trimmed(p.Phone)
	in.AvatarURL.Apply(&p.AvatarURL)
	p.UpdatedAt = s.now()

	if created {
		err = s.repo.Create(ctx, p)
	} else {
		err = s.repo.Update(ctx, p)
	}
	if err != nil {
		return Profile{}, apperrors.Internal("error al actualizar perfil", err)
	}

	if created && s.welcome != nil && p.Email != "" {
		name := ""
		if p.Name != nil {
			name = *p.Name
		}
		s.welcome.SendWelcomeEmail(ctx, p.Email, name)
	}
	return p, nil
}

// EmailOf devuelve el email del perfil ("" si no existe).
func (s *Service) EmailOf(ctx context.Context, userID string) (string, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Email, nil
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
