package profiles

import (
	"net/http"
	"time"

	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/profiles/me", getMyProfileHandler(svc, log))
	r.Put("/profiles/me", updateMyProfileHandler(svc, log))
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Phone     *string   `json:"phone"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func getMyProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		p, err := svc.Get(r.Context(), uid)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Perfil obtenido correctamente", toProfileResponse(p))
	}
}

func updateMyProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		claims, _ := middleware.GetClaims(r.Context())

		var req UpdateInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		p, err := svc.Update(r.Context(), uid, claims.Email, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Perfil actualizado correctamente", toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
