package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENAI_MODEL", "CORS_ORIGIN", "EMAIL_PORT", "STORAGE_USE_SSL"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.True(t, cfg.StorageUseSSL)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGIN", "https://a.app, https://b.app ,")
	t.Setenv("EMAIL_PORT", "not-a-number")
	t.Setenv("SUPABASE_URL", "https://x.supabase.co/")
	t.Setenv("APP_ENV", "Production")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.CORSOrigins)
	assert.Equal(t, 587, cfg.EmailPort)
	assert.Equal(t, "https://x.supabase.co", cfg.SupabaseURL)
	assert.True(t, cfg.IsProduction())
}
