package symptomchecks

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
	r.Route("/symptom-checks", func(sr chi.Router) {
		sr.Get("/pet/{petId}", listByPetHandler(svc, log))
		sr.Post("/pet/{petId}", createCheckHandler(svc, log))
		sr.Get("/{id}", getCheckHandler(svc, log))
	})
}

type checkResponse struct {
	ID          string      `json:"id"`
	PetID       string      `json:"pet_id"`
	Symptoms    string      `json:"symptoms"`
	TriageLevel TriageLevel `json:"triage_level"`
	Advice      string      `json:"advice"`
	NextActions []string    `json:"next_actions"`
	CreatedAt   time.Time   `json:"created_at"`
}

type createdCheckResponse struct {
	checkResponse
	PossibleCauses []string `json:"possible_causes"`
}

type petSummaryResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Breed  *string `json:"breed"`
	UserID string  `json:"user_id"`
}

type checkDetailResponse struct {
	checkResponse
	Pet petSummaryResponse `json:"pet"`
}

// @Summary Listar chequeos de síntomas de una mascota
// @Tags symptom-checks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petId path string true "ID de la mascota"
// @Success 200 {object} response.Envelope{data=[]checkResponse}
// @Failure 404 {object} response.Envelope
// @Router /symptom-checks/pet/{petId} [get]
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

		out := make([]checkResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCheckResponse(c))
		}
		response.OK(w, "Chequeos de síntomas obtenidos correctamente", out)
	}
}

// @Summary Analizar síntomas
// @Description Triage con IA: nivel de urgencia, causas posibles, consejos y próximos pasos.
// @Tags symptom-checks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petId path string true "ID de la mascota"
// @Param payload body CreateInput true "Síntomas (10 a 2000 caracteres)"
// @Success 201 {object} response.Envelope{data=createdCheckResponse}
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /symptom-checks/pet/{petId} [post]
func createCheckHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		res, err := svc.Create(r.Context(), uid, petID, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Análisis de síntomas completado", createdCheckResponse{
			checkResponse:  toCheckResponse(res.Check),
			PossibleCauses: res.PossibleCauses,
		})
	}
}

func getCheckHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		response.OK(w, "Chequeo de síntomas obtenido correctamente", checkDetailResponse{
			checkResponse: toCheckResponse(d.Check),
			Pet: petSummaryResponse{
				ID:     d.Pet.ID,
				Name:   d.Pet.Name,
				Breed:  d.Pet.Breed,
				UserID: d.Pet.UserID,
			},
		})
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

func toCheckResponse(c Check) checkResponse {
	next := c.NextActions
	if next == nil {
		next = []string{}
	}
	return checkResponse{
		ID:          c.ID,
		PetID:       c.PetID,
		Symptoms:    c.Symptoms,
		TriageLevel: c.TriageLevel,
		Advice:      c.Advice,
		NextActions: next,
		CreatedAt:   c.CreatedAt,
	}
}
