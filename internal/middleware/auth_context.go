package middleware

import (
	"context"
	"net/http"
	"strings"

	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext es el modo opcional:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: si viene header X-Debug-User-ID => setea claims.
// - Si no hay claims, el request sigue igual.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolve(r, verifier); ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth es el modo requerido: sin claims válidos corta con 401 y el
// handler no se ejecuta. Reutiliza los claims si AuthContext ya corrió.
func RequireAuth(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetClaims(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if verifier != nil && bearerToken(r.Header.Get("Authorization")) == "" {
				response.Error(w, r, nil, apperrors.Unauthorized("Token de autenticación no proporcionado"))
				return
			}

			claims, ok := resolve(r, verifier)
			if !ok {
				response.Error(w, r, nil, apperrors.Unauthorized("Token inválido o expirado"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// resolve hace como mucho una llamada al verifier.
func resolve(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil || strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok && c.UserID != ""
}

// CurrentUser devuelve el subject id o un error Unauthorized.
func CurrentUser(r *http.Request) (string, error) {
	c, ok := GetClaims(r.Context())
	if !ok {
		return "", apperrors.Unauthorized("No autenticado")
	}
	return c.UserID, nil
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
