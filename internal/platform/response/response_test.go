package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestError_OperationalKeepsMessageAndFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pets", nil)

	Error(rec, req, logger.Nop(), apperrors.Validation("Datos inválidos", apperrors.FieldError{Field: "name", Message: "es requerido"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Datos inválidos", body["message"])
	assert.Len(t, body["errors"], 1)
}

func TestError_UnclassifiedIsGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	Error(rec, req, logger.Nop(), errors.New("pq: relation pets does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Error interno del servidor", body["message"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestError_ServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", nil)

	Error(rec, req, nil, apperrors.ServiceUnavailable("IA no disponible", errors.New("not configured")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "IA no disponible", decode(t, rec)["message"])
}

func TestPaginatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, "ok", []int{1, 2}, NewPagination(2, 2, 5))

	body := decode(t, rec)
	p := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, p["page"])
	assert.EqualValues(t, 2, p["pageSize"])
	assert.EqualValues(t, 5, p["total"])
	assert.EqualValues(t, 3, p["totalPages"])
}

func TestPageParams(t *testing.T) {
	page, size, requested := PageParams(httptest.NewRequest(http.MethodGet, "/c", nil))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
	assert.False(t, requested)

	page, size, requested = PageParams(httptest.NewRequest(http.MethodGet, "/c?page=3&page_size=500", nil))
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxPageSize, size)
	assert.True(t, requested)
}

func TestNotFoundRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Ruta no encontrada: /api/nope", decode(t, rec)["message"])
}
