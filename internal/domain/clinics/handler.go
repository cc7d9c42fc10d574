package clinics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta lecturas públicas (auth opcional).
func RegisterRoutes(r chi.Router, svc *Catalog, log logger.Logger) {
	r.Route("/clinics", func(cr chi.Router) {
		cr.Get("/", listClinicsHandler(svc, log))
		cr.Get("/{id}", getClinicHandler(svc, log))
		cr.Get("/{id}/services", listServicesHandler(svc, log))
		cr.Get("/{id}/hours", listHoursHandler(svc, log))
	})
}

type clinicResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Rating    float64   `json:"rating"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type serviceResponse struct {
	ID              string  `json:"id"`
	ClinicID        string  `json:"clinic_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

type hoursResponse struct {
	ID        string `json:"id"`
	ClinicID  string `json:"clinic_id"`
	DayOfWeek int    `json:"day_of_week"`
	OpensAt   string `json:"opens_at"`
	ClosesAt  string `json:"closes_at"`
	IsClosed  bool   `json:"is_closed"`
}

// @Summary Listar clínicas
// @Description Clínicas ordenadas por rating. `is_active` por defecto true. Con `page`/`page_size` la respuesta incluye `pagination`.
// @Tags clinics
// @Produce json
// @Param is_active query bool false "Filtrar por activas"
// @Param page query int false "Página (1..n)"
// @Param page_size query int false "Tamaño de página (máx. 100)"
// @Success 200 {object} response.Envelope{data=[]clinicResponse}
// @Router /clinics [get]
func listClinicsHandler(svc *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active := true
		if raw := strings.TrimSpace(r.URL.Query().Get("is_active")); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				var c validate.Checker
				c.Add("is_active", "debe ser true o false")
				response.Error(w, r, log, c.Err())
				return
			}
			active = b
		}

		f := ListFilter{IsActive: &active}
		page, pageSize, paged := response.PageParams(r)
		if paged {
			f.Limit = pageSize
			f.Offset = (page - 1) * pageSize
		}

		res, err := svc.List(r.Context(), f)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]clinicResponse, 0, len(res.Items))
		for _, c := range res.Items {
			out = append(out, toClinicResponse(c))
		}
		if paged {
			response.Paginated(w, "Clínicas obtenidas correctamente", out, response.NewPagination(page, pageSize, res.Total))
			return
		}
		response.OK(w, "Clínicas obtenidas correctamente", out)
	}
}

func getClinicHandler(svc *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validate.UUID("id", id); err != nil {
			response.Error(w, r, log, err)
			return
		}

		c, err := svc.Get(r.Context(), id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Clínica obtenida correctamente", toClinicResponse(c))
	}
}

func listServicesHandler(svc *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validate.UUID("id", id); err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.Services(r.Context(), id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, serviceResponse{
				ID:              s.ID,
				ClinicID:        s.ClinicID,
				Name:            s.Name,
				Category:        s.Category,
				Description:     s.Description,
				BasePrice:       s.BasePrice,
				DurationMinutes: s.DurationMinutes,
				IsActive:        s.IsActive,
			})
		}
		response.OK(w, "Servicios obtenidos correctamente", out)
	}
}

func listHoursHandler(svc *Catalog, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := validate.UUID("id", id); err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.Hours(r.Context(), id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		out := make([]hoursResponse, 0, len(items))
		for _, h := range items {
			out = append(out, hoursResponse{
				ID:        h.ID,
				ClinicID:  h.ClinicID,
				DayOfWeek: h.DayOfWeek,
				OpensAt:   h.OpensAt,
				ClosesAt:  h.ClosesAt,
				IsClosed:  h.IsClosed,
			})
		}
		response.OK(w, "Horarios obtenidos correctamente", out)
	}
}

func toClinicResponse(c Clinic) clinicResponse {
	return clinicResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Rating:    c.Rating,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
