package main

import (
	"testing"

	"woofy-api/internal/config"
	"woofy-api/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerifier_ProductionRequiresConfig(t *testing.T) {
	v, err := newVerifier(config.Config{AppEnv: "production"}, logger.Nop())
	require.ErrorIs(t, err, errNoVerifier)
	assert.Nil(t, v)

	v, err = newVerifier(config.Config{AppEnv: "Production", SupabaseURL: "https://x.supabase.co"}, logger.Nop())
	require.Error(t, err)
	assert.Nil(t, v)
}

func TestNewVerifier_DevModeOutsideProduction(t *testing.T) {
	v, err := newVerifier(config.Config{AppEnv: "development"}, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewVerifier_JWTSecret(t *testing.T) {
	v, err := newVerifier(config.Config{AppEnv: "production", SupabaseJWTSecret: "s3cret"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, v)
}
