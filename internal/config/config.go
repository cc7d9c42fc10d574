package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del proceso. Las integraciones opcionales
// (IA, correo, storage, auth) quedan deshabilitadas si faltan sus claves.
type Config struct {
	Port    string
	AppName string
	AppEnv  string

	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxAgeDays int

	DBDSN string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string
	EmailFrom string

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool
	StoragePublicURL string

	CORSOrigins []string
}

// Load lee .env (si existe) y luego el entorno.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv construye la config sólo desde variables de entorno.
func FromEnv() Config {
	return Config{
		Port:    getEnv("PORT", "3000"),
		AppName: getEnv("APP_NAME", "woofy-api"),
		AppEnv:  getEnv("APP_ENV", "development"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 14),

		DBDSN: getEnv("DB_DSN", ""),

		SupabaseURL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		EmailHost: getEnv("EMAIL_HOST", ""),
		EmailPort: getEnvInt("EMAIL_PORT", 587),
		EmailUser: getEnv("EMAIL_USER", ""),
		EmailPass: getEnv("EMAIL_PASS", ""),
		EmailFrom: getEnv("EMAIL_FROM", "WooFy <noreply@woofy.app>"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "pet-photos"),
		StorageUseSSL:    getEnvBool("STORAGE_USE_SSL", true),
		StoragePublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),

		CORSOrigins: splitList(getEnv("CORS_ORIGIN", "*")),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
