package pets

import (
	"net/http"
	"time"

	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/{id}", getPetHandler(svc, log))
		pr.Put("/{id}", updatePetHandler(svc, log))
		pr.Delete("/{id}", deletePetHandler(svc, log))
		pr.Post("/{id}/photo", uploadPhotoHandler(svc, log))
	})
}

type petResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Breed     *string   `json:"breed"`
	AgeMonths *int      `json:"age_months"`
	WeightKg  *float64  `json:"weight_kg"`
	PhotoURL  *string   `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// @Summary Listar mascotas
// @Description Lista las mascotas del usuario autenticado, más recientes primero.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} response.Envelope{data=[]petResponse}
// @Failure 401 {object} response.Envelope
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.List(r.Context(), uid)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		response.OK(w, "Mascotas obtenidas correctamente", out)
	}
}

// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body CreateInput true "Datos de la mascota"
// @Success 201 {object} response.Envelope{data=petResponse}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		p, err := svc.Create(r.Context(), uid, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Mascota creada correctamente", toPetResponse(p))
	}
}

// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID de la mascota"
// @Success 200 {object} response.Envelope{data=petResponse}
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		p, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Mascota obtenida correctamente", toPetResponse(p))
	}
}

// updatePetHandler aplica sólo los campos presentes; null limpia los opcionales.
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		p, err := svc.Update(r.Context(), uid, id, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Mascota actualizada correctamente", toPetResponse(p))
	}
}

func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		response.OK(w, "Mascota eliminada correctamente", nil)
	}
}

// @Summary Subir foto de mascota
// @Description multipart/form-data con el campo `photo` (imagen, máx. 5 MB).
// @Tags pets
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID de la mascota"
// @Param photo formData file true "Imagen"
// @Success 200 {object} response.Envelope{data=petResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /pets/{id}/photo [post]
func uploadPhotoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoBytes+(1<<20))
		if err := r.ParseMultipartForm(MaxPhotoBytes); err != nil {
			response.Error(w, r, log, apperrors.Validation("Formulario multipart inválido",
				apperrors.FieldError{Field: "photo", Message: "es requerido"}))
			return
		}
		file, header, err := r.FormFile("photo")
		if err != nil {
			response.Error(w, r, log, apperrors.Validation("Formulario multipart inválido",
				apperrors.FieldError{Field: "photo", Message: "es requerido"}))
			return
		}
		defer file.Close()

		p, err := svc.UploadPhoto(r.Context(), uid, id, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Foto actualizada correctamente", toPetResponse(p))
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

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Breed:     p.Breed,
		AgeMonths: p.AgeMonths,
		WeightKg:  p.WeightKg,
		PhotoURL:  p.PhotoURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
