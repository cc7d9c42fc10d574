package medicalrecords

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
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Get("/pet/{petId}", listByPetHandler(svc, log))
		mr.Post("/pet/{petId}", createRecordHandler(svc, log))
		mr.Get("/{id}", getRecordHandler(svc, log))
		mr.Put("/{id}", updateRecordHandler(svc, log))
		mr.Delete("/{id}", deleteRecordHandler(svc, log))
	})
}

type recordResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Type        Type      `json:"type"`
	Date        string    `json:"date"`
	Notes       *string   `json:"notes"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type petSummaryResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Breed  *string `json:"breed"`
	UserID string  `json:"user_id"`
}

type recordDetailResponse struct {
	recordResponse
	Pet petSummaryResponse `json:"pet"`
}

// @Summary Listar registros médicos de una mascota
// @Tags medical-records
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petId path string true "ID de la mascota"
// @Param type query string false "vaccine|deworm|antiflea|surgery|allergy|weight|other"
// @Success 200 {object} response.Envelope{data=[]recordResponse}
// @Failure 404 {object} response.Envelope
// @Router /medical-records/pet/{petId} [get]
func listByPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, petID, err := userAndParam(r, "petId")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.ListByPet(r.Context(), uid, petID, r.URL.Query().Get("type"))
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		response.OK(w, "Registros médicos obtenidos correctamente", out)
	}
}

// @Summary Crear registro médico
// @Tags medical-records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petId path string true "ID de la mascota"
// @Param payload body CreateInput true "Registro"
// @Success 201 {object} response.Envelope{data=recordResponse}
// @Failure 400 {object} response.Envelope
// @Router /medical-records/pet/{petId} [post]
func createRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		rec, err := svc.Create(r.Context(), uid, petID, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Registro médico creado correctamente", toRecordResponse(rec))
	}
}

// @Summary Obtener registro médico
// @Tags medical-records
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID del registro"
// @Success 200 {object} response.Envelope{data=recordDetailResponse}
// @Failure 404 {object} response.Envelope
// @Router /medical-records/{id} [get]
func getRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndParam(r, "id")
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		d, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Registro médico obtenido correctamente", recordDetailResponse{
			recordResponse: toRecordResponse(d.Record),
			Pet: petSummaryResponse{
				ID:     d.Pet.ID,
				Name:   d.Pet.Name,
				Breed:  d.Pet.Breed,
				UserID: d.Pet.UserID,
			},
		})
	}
}

func updateRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		rec, err := svc.Update(r.Context(), uid, id, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Registro médico actualizado correctamente", toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		response.OK(w, "Registro médico eliminado correctamente", nil)
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

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		PetID:       rec.PetID,
		Type:        rec.Type,
		Date:        FormatDate(rec.Date),
		Notes:       rec.Notes,
		Attachments: attachments(rec.Attachments),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
