package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"woofy-api/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-1","email":"ana@woofy.app"}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
		}
	}))
}

func newVerifier(t *testing.T, baseURL string) *Verifier {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL, AnonKey: "anon"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_ResolvesSubject(t *testing.T) {
	srv := newFakeGoTrue(t)
	defer srv.Close()

	claims, err := newVerifier(t, srv.URL).Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@woofy.app", claims.Email)
}

func TestVerify_RejectedToken(t *testing.T) {
	srv := newFakeGoTrue(t)
	defer srv.Close()

	_, err := newVerifier(t, srv.URL).Verify(context.Background(), "expired")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_UpstreamFailure(t *testing.T) {
	srv := newFakeGoTrue(t)
	defer srv.Close()

	_, err := newVerifier(t, srv.URL).Verify(context.Background(), "broken")
	assert.ErrorIs(t, err, auth.ErrProviderUnavailable)
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost"})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
