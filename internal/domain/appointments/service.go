package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/patch"
	"woofy-api/internal/platform/validate"

	"github.com/google/uuid"
)

type PetOwnership interface {
	RequireOwned(ctx context.Context, userID, petID string) (pets.Pet, error)
}

type EmailLookup interface {
	EmailOf(ctx context.Context, userID string) (string, error)
}

type ConfirmationSender interface {
	SendAppointmentConfirmation(ctx context.Context, to string, d notifications.AppointmentEmail) notifications.Result
}

type Service struct {
	repo   Repository
	pets   PetOwnership
	emails EmailLookup
	mailer ConfirmationSender
	log    logger.Logger
	now    func() time.Time
}

// NewService: emails/mailer pueden ser nil (no se envía confirmación).
func NewService(repo Repository, pets PetOwnership, emails EmailLookup, mailer ConfirmationSender, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, pets: pets, emails: emails, mailer: mailer, log: log, now: time.Now}
}

type CreateInput struct {
	PetID     string    `json:"pet_id" validate:"required,uuid"`
	ClinicID  string    `json:"clinic_id" validate:"required,uuid"`
	ServiceID string    `json:"service_id" validate:"required,uuid"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	EndsAt    time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Notes     *string   `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateInput struct {
	StartsAt patch.Field[time.Time] `json:"starts_at"`
	EndsAt   patch.Field[time.Time] `json:"ends_at"`
	Notes    patch.Field[string]    `json:"notes"`
}

func (s *Service) List(ctx context.Context, userID, status string, upcoming bool) ([]Detail, error) {
	var f ListFilter
	if status = strings.TrimSpace(status); status != "" {
		st := Status(status)
		if !st.Valid() {
			return nil, invalidStatus()
		}
		f.Status = &st
	}
	if upcoming {
		now := s.now()
		f.From = &now
	}

	items, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, apperrors.Internal("error al obtener citas", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Detail, error) {
	d, err := s.repo.Get(ctx, id, userID)
	if errors.Is(err, ErrNotFound) {
		return Detail{}, errNotFound()
	}
	if err != nil {
		return Detail{}, apperrors.Internal("error al obtener cita", err)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Detail, error) {
	if err := validate.Struct(in); err != nil {
		return Detail{}, err
	}
	if _, err := s.pets.RequireOwned(ctx, userID, in.PetID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return Detail{}, apperrors.Validation("La mascota no pertenece al usuario")
		}
		return Detail{}, err
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     in.PetID,
		ClinicID:  in.ClinicID,
		ServiceID: in.ServiceID,
		StartsAt:  in.StartsAt.UTC(),
		EndsAt:    in.EndsAt.UTC(),
		Status:    StatusPending,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Detail{}, apperrors.Internal("error al crear cita", err)
	}
	return s.Get(ctx, userID, a.ID)
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (Detail, error) {
	var c validate.Checker
	if in.StartsAt.Set && !in.StartsAt.HasValue() {
		c.Add("starts_at", "es requerido")
	}
	if in.EndsAt.Set && !in.EndsAt.HasValue() {
		c.Add("ends_at", "es requerido")
	}
	if in.Notes.HasValue() {
		c.Var("notes", in.Notes.Value, "max=1000")
	}
	if err := c.Err(); err != nil {
		return Detail{}, err
	}

	cur, err := s.Get(ctx, userID, id)
	if err != nil {
		return Detail{}, err
	}

	a := cur.Appointment
	if in.StartsAt.HasValue() {
		a.StartsAt = in.StartsAt.Value.UTC()
	}
	if in.EndsAt.HasValue() {
		a.EndsAt = in.EndsAt.Value.UTC()
	}
	in.Notes.Apply(&a.Notes)
	if !a.EndsAt.After(a.StartsAt) {
		c.Add("ends_at", "debe ser posterior a starts_at")
		return Detail{}, c.Err()
	}

	return s.save(ctx, a)
}

// UpdateStatus acepta cualquier transición. Al confirmar envía el correo de
// confirmación; un fallo de correo no afecta la respuesta.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, status string) (Detail, error) {
	st := Status(strings.TrimSpace(status))
	if !st.Valid() {
		return Detail{}, invalidStatus()
	}

	cur, err := s.Get(ctx, userID, id)
	if err != nil {
		return Detail{}, err
	}

	a := cur.Appointment
	a.Status = st
	d, err := s.save(ctx, a)
	if err != nil {
		return Detail{}, err
	}

	if st == StatusConfirmed {
		s.sendConfirmation(ctx, d)
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return apperrors.Internal("error al eliminar cita", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, a Appointment) (Detail, error) {
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Detail{}, errNotFound()
		}
		return Detail{}, apperrors.Internal("error al actualizar cita", err)
	}
	return s.Get(ctx, a.UserID, a.ID)
}

func (s *Service) sendConfirmation(ctx context.Context, d Detail) {
	if s.mailer == nil || s.emails == nil {
		return
	}
	to, err := s.emails.EmailOf(ctx, d.UserID)
	if err != nil || to == "" {
		s.log.Warn("appointment confirmation skipped: no email", map[string]any{"appointment_id": d.ID, "err": err})
		return
	}

	mail := notifications.AppointmentEmail{StartsAt: d.StartsAt}
	if d.Clinic != nil {
		mail.ClinicName = d.Clinic.Name
	}
	if d.Service != nil {
		mail.ServiceName = d.Service.Name
	}
	if d.Pet != nil {
		mail.PetName = d.Pet.Name
	}
	if d.Notes != nil {
		mail.Notes = *d.Notes
	}

	res := s.mailer.SendAppointmentConfirmation(ctx, to, mail)
	if !res.Success {
		s.log.Warn("appointment confirmation not sent", map[string]any{"appointment_id": d.ID, "reason": res.Message})
	}
}

func errNotFound() error {
	return apperrors.NotFound("Cita no encontrada")
}

func invalidStatus() error {
	return apperrors.Validation("Estado inválido", apperrors.FieldError{
		Field:   "status",
		Message: "debe ser uno de: pending, confirmed, rescheduled, cancelled, done",
	})
}
