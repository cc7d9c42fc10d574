package jwtverify

import (
	"context"
	"testing"
	"time"

	"woofy-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerify_ValidToken(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"sub":   "user-1",
		"email": "ana@woofy.app",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := New(secret).Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@woofy.app", claims.Email)
}

func TestVerify_Rejections(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	cases := map[string]string{
		"expired":     sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no exp":      sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "u"}),
		"no sub":      sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": exp}),
		"wrong key":   sign(t, jwt.SigningMethodHS256, []byte("other-secret"), jwt.MapClaims{"sub": "u", "exp": exp}),
		"wrong alg":   sign(t, jwt.SigningMethodHS512, []byte(secret), jwt.MapClaims{"sub": "u", "exp": exp}),
		"not a token": "abc.def",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(secret).Verify(context.Background(), tok)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}
