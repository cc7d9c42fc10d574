package reminders

import (
	"net/http"
	"time"

	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(svc, log))
		rr.Get("/pet/{petId}", listByPetHandler(svc, log))
		rr.Post("/pet/{petId}", createReminderHandler(svc, log))
		rr.Get("/{id}", getReminderHandler(svc, log))
		rr.Put("/{id}", updateReminderHandler(svc, log))
		rr.Delete("/{id}", deleteReminderHandler(svc, log))
	})
}

type reminderResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Type        Type      `json:"type"`
	IsSent      bool      `json:"is_sent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type petSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Breed    *string `json:"breed"`
	PhotoURL *string `json:"photo_url"`
}

type reminderWithPetResponse struct {
	reminderResponse
	Pet petSummaryResponse `json:"pet"`
}

// @Summary Listar recordatorios
// @Description Recordatorios de todas las mascotas del usuario, por vencimiento ascendente.
// @Tags reminders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param upcoming query bool false "Sólo futuros"
// @Param type query string false "vaccine|deworm|antiflea|checkup|grooming|other"
// @Success 200 {object} response.Envelope{data=[]reminderWithPetResponse}
// @Router /reminders [get]
func listRemindersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), uid, q.Get("upcoming") == "true", q.Get("type"))
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]reminderWithPetResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderWithPetResponse(rem))
		}
		if len(out) == 0 {
			response.OK(w, "No hay recordatorios", out)
			return
		}
		response.OK(w, "Recordatorios obtenidos correctamente", out)
	}
}

func listByPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, petID, err := userAndParam(r, "petId")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.ListByPet(r.Context(), uid, petID)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem))
		}
		response.OK(w, "Recordatorios obtenidos correctamente", out)
	}
}

// @Summary Crear recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petId path string true "ID de la mascota"
// @Param payload body CreateInput true "Recordatorio"
// @Success 201 {object} response.Envelope{data=reminderResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reminders/pet/{petId} [post]
func createReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, petID, err := userAndParam(r, "petId")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req CreateInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		rem, err := svc.Create(r.Context(), uid, petID, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Recordatorio creado correctamente", toReminderResponse(rem))
	}
}

func getReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndParam(r, "id")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		rem, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Recordatorio obtenido correctamente", toReminderWithPetResponse(rem))
	}
}

func updateReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndParam(r, "id")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req UpdateInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		rem, err := svc.Update(r.Context(), uid, id, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Recordatorio actualizado correctamente", toReminderResponse(rem))
	}
}

func deleteReminderHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndParam(r, "id")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, id); err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Recordatorio eliminado correctamente", nil)
	}
}

func userAndParam(r *http.Request, name string) (string, string, error) {
	uid, err := middleware.CurrentUser(r)
	if err != nil {
		return "", "", err
	}
	v := chi.URLParam(r, name)
	if err := validate.UUID(name, v); err != nil {
		return "", "", err
	}
	return uid, v, nil
}

func toReminderResponse(rem Reminder) reminderResponse {
	return reminderResponse{
		ID:          rem.ID,
		PetID:       rem.PetID,
		Title:       rem.Title,
		Description: rem.Description,
		DueAt:       rem.DueAt,
		Type:        rem.Type,
		IsSent:      rem.IsSent,
		CreatedAt:   rem.CreatedAt,
		UpdatedAt:   rem.UpdatedAt,
	}
}

func toReminderWithPetResponse(rem WithPet) reminderWithPetResponse {
	return reminderWithPetResponse{
		reminderResponse: toReminderResponse(rem.Reminder),
		Pet: petSummaryResponse{
			ID:       rem.Pet.ID,
			Name:     rem.Pet.Name,
			Breed:    rem.Pet.Breed,
			PhotoURL: rem.Pet.PhotoURL,
		},
	}
}
