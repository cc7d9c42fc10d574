package middleware

import (
	"net/http"
	"runtime/debug"

	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover convierte un panic en 500 con envelope y lo loguea con stack.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": chimw.GetReqID(r.Context()),
					"stack":      string(debug.Stack()),
				})
				response.JSON(w, http.StatusInternalServerError, response.Envelope{
					Success: false,
					Message: "Error interno del servidor",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
