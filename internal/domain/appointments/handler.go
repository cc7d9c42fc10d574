package appointments

import (
	"net/http"
	"strings"
	"time"

	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, log))
		ar.Post("/", createAppointmentHandler(svc, log))
		ar.Get("/{id}", getAppointmentHandler(svc, log))
		ar.Put("/{id}", updateAppointmentHandler(svc, log))
		ar.Patch("/{id}/status", updateStatusHandler(svc, log))
		ar.Delete("/{id}", deleteAppointmentHandler(svc, log))
	})
}

type petSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Breed    *string `json:"breed"`
	PhotoURL *string `json:"photo_url"`
}

type clinicSummaryResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type serviceSummaryResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type appointmentResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	PetID     string                  `json:"pet_id"`
	ClinicID  string                  `json:"clinic_id"`
	ServiceID string                  `json:"service_id"`
	StartsAt  time.Time               `json:"starts_at"`
	EndsAt    time.Time               `json:"ends_at"`
	Status    Status                  `json:"status"`
	Notes     *string                 `json:"notes"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	Pet       *petSummaryResponse     `json:"pet"`
	Clinic    *clinicSummaryResponse  `json:"clinic"`
	Service   *serviceSummaryResponse `json:"service"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// @Summary Listar citas
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param status query string false "pending|confirmed|rescheduled|cancelled|done"
// @Param upcoming query bool false "Sólo citas con starts_at >= ahora"
// @Success 200 {object} response.Envelope{data=[]appointmentResponse}
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), uid, q.Get("status"), strings.EqualFold(q.Get("upcoming"), "true"))
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toAppointmentResponse(d))
		}
		response.OK(w, "Citas obtenidas correctamente", out)
	}
}

func getAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		d, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Cita obtenida correctamente", toAppointmentResponse(d))
	}
}

// @Summary Crear cita
// @Description La mascota debe pertenecer al usuario. La cita nace en estado pending.
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body CreateInput true "Datos de la cita (fechas RFC3339)"
// @Success 201 {object} response.Envelope{data=appointmentResponse}
// @Failure 400 {object} response.Envelope
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req CreateInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		d, err := svc.Create(r.Context(), uid, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Cita creada correctamente", toAppointmentResponse(d))
	}
}

func updateAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req UpdateInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		d, err := svc.Update(r.Context(), uid, id, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Cita actualizada correctamente", toAppointmentResponse(d))
	}
}

func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req updateStatusRequest
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		d, err := svc.UpdateStatus(r.Context(), uid, id, req.Status)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		msg := "Cita actualizada correctamente"
		if d.Status == StatusCancelled {
			msg = "Cita cancelada correctamente"
		}
		response.OK(w, msg, toAppointmentResponse(d))
	}
}

func deleteAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, id); err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Cita eliminada correctamente", nil)
	}
}

func userAndID(r *http.Request) (string, string, error) {
	uid, err := middleware.CurrentUser(r)
	if err != nil {
		return "", "", err
	}
	id := chi.URLParam(r, "id")
	if err := validate.UUID("id", id); err != nil {
		return "", "", err
	}
	return uid, id, nil
}

func toAppointmentResponse(d Detail) appointmentResponse {
	out := appointmentResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		PetID:     d.PetID,
		ClinicID:  d.ClinicID,
		ServiceID: d.ServiceID,
		StartsAt:  d.StartsAt,
		EndsAt:    d.EndsAt,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Pet != nil {
		out.Pet = &petSummaryResponse{ID: d.Pet.ID, Name: d.Pet.Name, Breed: d.Pet.Breed, PhotoURL: d.Pet.PhotoURL}
	}
	if d.Clinic != nil {
		out.Clinic = &clinicSummaryResponse{ID: d.Clinic.ID, Name: d.Clinic.Name, Address: d.Clinic.Address, Phone: d.Clinic.Phone}
	}
	if d.Service != nil {
		out.Service = &serviceSummaryResponse{
			ID:              d.Service.ID,
			Name:            d.Service.Name,
			Category:        d.Service.Category,
			BasePrice:       d.Service.BasePrice,
			DurationMinutes: d.Service.DurationMinutes,
		}
	}
	return out
}
