package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Envelope es la forma única de toda respuesta JSON.
type Envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       any                    `json:"data,omitempty"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

// PageParams lee ?page y ?page_size. requested es false si no vino ninguno.
func PageParams(r *http.Request) (page, pageSize int, requested bool) {
	q := r.URL.Query()
	rawPage, rawSize := strings.TrimSpace(q.Get("page")), strings.TrimSpace(q.Get("page_size"))
	if rawSize == "" {
		rawSize = strings.TrimSpace(q.Get("limit"))
	}
	requested = rawPage != "" || rawSize != ""

	page, pageSize = 1, DefaultPageSize
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(rawSize); err == nil && n > 0 {
		pageSize = min(n, MaxPageSize)
	}
	return page, pageSize, requested
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Paginated(w http.ResponseWriter, message string, data any, p Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &p})
}

// Error es el manejador central de errores: los operacionales conservan
// mensaje y campos; el resto se loguea y sale como 500 genérico.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if err == nil {
		return
	}

	fields := map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
		"err":    err.Error(),
	}
	if id := chimw.GetReqID(r.Context()); id != "" {
		fields["request_id"] = id
	}

	var ae *apperrors.Error
	if !errors.As(err, &ae) || ae.Kind == apperrors.KindInternal {
		if log != nil {
			log.Error("unhandled error", fields)
		}
		JSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Error interno del servidor"})
		return
	}

	status := ae.HTTPStatus()
	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields)
		} else {
			log.Debug("request rejected", fields)
		}
	}
	JSON(w, status, Envelope{Success: false, Message: ae.Message, Errors: ae.Fields})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, Envelope{Success: false, Message: "Ruta no encontrada: " + r.URL.Path})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, Envelope{Success: false, Message: "Método no permitido: " + r.Method})
}

// DecodeJSON decodifica el body o devuelve un error de validación.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.Validation("El cuerpo de la petición es requerido")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("JSON inválido")
	}
	return nil
}
