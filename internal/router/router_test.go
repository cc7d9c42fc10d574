package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mem "woofy-api/internal/adapters/storage/memory"
	"woofy-api/internal/ports/completion"
	"woofy-api/internal/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type stubCompleter struct {
	reply string
}

func (s stubCompleter) Complete(context.Context, completion.Request) (string, error) {
	return s.reply, nil
}

func (s stubCompleter) Stream(_ context.Context, _ completion.Request, onDelta func(string) error) (string, error) {
	return s.reply, onDelta(s.reply)
}

func newServer(t *testing.T, c completion.Completer) *httptest.Server {
	t.Helper()
	store := mem.New()
	store.SeedDemo(time.Now().UTC())
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, Store: store, Completer: c}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_PetLifecycle(t *testing.T) {
	ts := newServer(t, nil)
	ownerID := "owner-1"

	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Rex",
		"age_months": 24,
		"weight_kg":  12.5,
	})

	st, env := doReq(t, ts.URL, "GET", "/api/pets/"+petID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get pet, got %d msg=%s", st, env.Message)
	}
	var pet struct {
		ID        string   `json:"id"`
		UserID    string   `json:"user_id"`
		Name      string   `json:"name"`
		Breed     *string  `json:"breed"`
		AgeMonths *int     `json:"age_months"`
		WeightKg  *float64 `json:"weight_kg"`
	}
	decodeData(t, env, &pet)
	if pet.ID != petID || pet.UserID != ownerID || pet.Name != "Rex" {
		t.Fatalf("unexpected pet %+v", pet)
	}
	if pet.AgeMonths == nil || *pet.AgeMonths != 24 || pet.WeightKg == nil || *pet.WeightKg != 12.5 || pet.Breed != nil {
		t.Fatalf("unexpected optional fields %+v", pet)
	}

	// Update parcial: null limpia, ausente conserva
	st, env = doReq(t, ts.URL, "PUT", "/api/pets/"+petID, ownerID, map[string]any{
		"weight_kg": nil,
		"breed":     "Beagle",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update pet, got %d msg=%s", st, env.Message)
	}
	decodeData(t, env, &pet)
	if pet.WeightKg != nil || pet.AgeMonths == nil || pet.Breed == nil || *pet.Breed != "Beagle" {
		t.Fatalf("unexpected pet after update %+v", pet)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete pet, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/api/pets/"+petID, ownerID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

func TestHTTP_ForeignResourcesLookMissing(t *testing.T) {
	ts := newServer(t, nil)
	ownerID := "owner-1"
	otherID := "intruder-1"

	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Milo"})

	st, env := doReq(t, ts.URL, "POST", "/api/medical-records/pet/"+petID, ownerID, map[string]any{
		"type": "vaccine",
		"date": "2025-03-10",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create record, got %d msg=%s", st, env.Message)
	}
	var rec struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &rec)

	{
		st, env := doReq(t, ts.URL, "GET", "/api/pets/"+petID, otherID, nil)
		if st != http.StatusNotFound || env.Message != "Mascota no encontrada" {
			t.Fatalf("expected 404 for foreign pet, got %d msg=%s", st, env.Message)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/medical-records/"+rec.ID, otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign record, got %d", st)
		}
	}
	{
		st, env := doReq(t, ts.URL, "POST", "/api/medical-records/pet/"+petID, otherID, map[string]any{
			"type": "vaccine",
			"date": "2025-03-10",
		})
		if st != http.StatusBadRequest || env.Message != "La mascota no pertenece al usuario" {
			t.Fatalf("expected 400 creating on foreign pet, got %d msg=%s", st, env.Message)
		}
	}
	{
		// Borrar algo ajeno no borra nada
		st, _ := doReq(t, ts.URL, "DELETE", "/api/pets/"+petID, otherID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected idempotent delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/pets/"+petID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("pet must survive foreign delete, got %d", st)
		}
	}
}

func TestHTTP_AuthGate(t *testing.T) {
	ts := newServer(t, nil)

	st, env := doReq(t, ts.URL, "GET", "/api/pets", "", nil)
	if st != http.StatusUnauthorized || env.Success {
		t.Fatalf("expected 401 without identity, got %d", st)
	}

	// Clínicas: auth opcional
	st, env = doReq(t, ts.URL, "GET", "/api/clinics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 anonymous clinics, got %d msg=%s", st, env.Message)
	}
	var list []struct {
		IsActive bool `json:"is_active"`
	}
	decodeData(t, env, &list)
	if len(list) == 0 {
		t.Fatalf("expected seeded clinics")
	}
	for _, c := range list {
		if !c.IsActive {
			t.Fatalf("inactive clinic listed by default")
		}
	}

	st, _ = doReq(t, ts.URL, "GET", "/api/clinics/"+mem.DemoClinicID+"/hours", "someone", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 clinic hours with identity, got %d", st)
	}
}

func TestHTTP_InvalidIDsAndUnknownRoutes(t *testing.T) {
	ts := newServer(t, nil)

	st, env := doReq(t, ts.URL, "GET", "/api/pets/123", "owner-1", nil)
	if st != http.StatusBadRequest || len(env.Errors) != 1 || env.Errors[0].Field != "id" {
		t.Fatalf("expected 400 on invalid id, got %d errors=%+v", st, env.Errors)
	}

	st, env = doReq(t, ts.URL, "GET", "/api/nope", "", nil)
	if st != http.StatusNotFound || env.Message != "Ruta no encontrada: /api/nope" {
		t.Fatalf("expected 404 route, got %d msg=%s", st, env.Message)
	}

	st, env = doReq(t, ts.URL, "GET", "/api", "", nil)
	if st != http.StatusOK || !env.Success {
		t.Fatalf("expected 200 welcome, got %d", st)
	}
}

func TestHTTP_SymptomTriage(t *testing.T) {
	ts := newServer(t, stubCompleter{reply: "```json\n" + `{"triage_level":"high","possible_causes":["gastritis"],"advice":"Consulta hoy","next_actions":["Hidratar"]}` + "\n```"})
	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Rex"})

	st, env := doReq(t, ts.URL, "POST", "/api/symptom-checks/pet/"+petID, ownerID, map[string]any{
		"symptoms": "vomiting and lethargy for two days",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 triage, got %d msg=%s", st, env.Message)
	}
	var created struct {
		ID             string   `json:"id"`
		TriageLevel    string   `json:"triage_level"`
		PossibleCauses []string `json:"possible_causes"`
	}
	decodeData(t, env, &created)
	if created.TriageLevel != "high" || len(created.PossibleCauses) != 1 {
		t.Fatalf("unexpected triage %+v", created)
	}

	st, env = doReq(t, ts.URL, "GET", "/api/symptom-checks/"+created.ID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get check, got %d", st)
	}
	var stored map[string]any
	decodeData(t, env, &stored)
	if _, ok := stored["possible_causes"]; ok {
		t.Fatalf("possible_causes must not be persisted")
	}
}

func TestHTTP_SymptomTriage_Unavailable(t *testing.T) {
	ts := newServer(t, nil)
	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{"name": "Rex"})

	st, _ := doReq(t, ts.URL, "POST", "/api/symptom-checks/pet/"+petID, ownerID, map[string]any{
		"symptoms": "vomiting and lethargy for two days",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without completer, got %d", st)
	}
}

func TestHTTP_ConversationDelete(t *testing.T) {
	ts := newServer(t, stubCompleter{reply: "Hola, ¿en qué te ayudo?"})
	ownerID := "owner-1"

	st, env := doReq(t, ts.URL, "POST", "/api/ai-chat/conversations", ownerID, map[string]any{})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create conversation, got %d msg=%s", st, env.Message)
	}
	var conv struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	decodeData(t, env, &conv)
	if conv.Title != "Nueva conversación" {
		t.Fatalf("unexpected default title %q", conv.Title)
	}

	st, env = doReq(t, ts.URL, "POST", "/api/ai-chat/conversations/"+conv.ID+"/messages", ownerID, map[string]any{
		"content": "Mi perro no come",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 send message, got %d msg=%s", st, env.Message)
	}

	st, env = doReq(t, ts.URL, "GET", "/api/ai-chat/conversations/"+conv.ID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get conversation, got %d", st)
	}
	var thread struct {
		Title    string `json:"title"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	decodeData(t, env, &thread)
	if thread.Title != "Mi perro no come" || len(thread.Messages) != 2 || thread.Messages[0].Role != "user" {
		t.Fatalf("unexpected thread %+v", thread)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/api/ai-chat/conversations/"+conv.ID, ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete conversation, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/api/ai-chat/conversations/"+conv.ID, ownerID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

// --- helpers ---

func createPet(t *testing.T, baseURL, userID string, body map[string]any) string {
	t.Helper()
	st, env := doReq(t, baseURL, "POST", "/api/pets", userID, body)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d msg=%s", st, env.Message)
	}
	var out struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &out)
	if out.ID == "" {
		t.Fatalf("missing pet id")
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path, userID string, body any) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope (status %d): %v body=%s", res.StatusCode, err, string(raw))
	}
	return res.StatusCode, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v data=%s", err, string(env.Data))
	}
}
