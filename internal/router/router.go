package router

import (
	"net/http"
	"time"

	_ "woofy-api/docs"

	mem "woofy-api/internal/adapters/storage/memory"
	"woofy-api/internal/domain/aichat"
	"woofy-api/internal/domain/appointments"
	"woofy-api/internal/domain/clinics"
	"woofy-api/internal/domain/medicalrecords"
	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/domain/pets"
	"woofy-api/internal/domain/profiles"
	"woofy-api/internal/domain/reminders"
	"woofy-api/internal/domain/symptomchecks"
	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/ports/auth"
	"woofy-api/internal/ports/completion"
	"woofy-api/internal/ports/mail"
	"woofy-api/internal/ports/objectstore"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Stores agrupa los repos de cada dominio. Lo implementan memory.Store y
// postgres.Store.
type Stores interface {
	Profiles() profiles.Repository
	Pets() pets.Repository
	Clinics() clinics.Repository
	Appointments() appointments.Repository
	MedicalRecords() medicalrecords.Repository
	Reminders() reminders.Repository
	SymptomChecks() symptomchecks.Repository
	Chat() aichat.Repository
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger

	// Opcional: si no viene, in-memory.
	Store Stores

	// Integraciones opcionales: nil deshabilita la funcionalidad (503 / sin email).
	Completer completion.Completer
	Mail      mail.Sender
	Photos    objectstore.Store

	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	store := opts.Store
	if store == nil {
		store = mem.New()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, "ok", map[string]any{"status": "ok", "time": time.Now().UTC()})
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	mailer := notifications.NewService(opts.Mail, log)

	profilesSvc := profiles.NewService(store.Profiles(), mailer)
	petsSvc := pets.NewService(store.Pets(), opts.Photos)
	catalog := clinics.NewCatalog(store.Clinics())
	appointmentsSvc := appointments.NewService(store.Appointments(), petsSvc, profilesSvc, mailer, log)
	recordsSvc := medicalrecords.NewService(store.MedicalRecords(), petsSvc)
	remindersSvc := reminders.NewService(store.Reminders(), petsSvc)
	checksSvc := symptomchecks.NewService(store.SymptomChecks(), petsSvc, symptomchecks.NewAnalyzer(opts.Completer))
	chatSvc := aichat.NewService(store.Chat(), petsSvc, opts.Completer, log)

	r.Route("/api", func(api chi.Router) {
		api.Get("/", welcomeHandler)

		// Catálogo público: el token es opcional.
		api.Group(func(pub chi.Router) {
			pub.Use(middleware.AuthContext(opts.AuthVerifier))
			clinics.RegisterRoutes(pub, catalog, log)
		})

		api.Group(func(priv chi.Router) {
			priv.Use(middleware.RequireAuth(opts.AuthVerifier))

			profiles.RegisterRoutes(priv, profilesSvc, log)
			pets.RegisterRoutes(priv, petsSvc, log)
			appointments.RegisterRoutes(priv, appointmentsSvc, log)
			medicalrecords.RegisterRoutes(priv, recordsSvc, log)
			reminders.RegisterRoutes(priv, remindersSvc, log)
			symptomchecks.RegisterRoutes(priv, checksSvc, log)
			aichat.RegisterRoutes(priv, chatSvc, log, origins...)
		})
	})

	return r
}

// @Summary Bienvenida
// @Tags meta
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func welcomeHandler(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, "Welcome to WooFy API!", map[string]any{
		"name":    "WooFy API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"profiles":        "/api/profiles",
			"pets":            "/api/pets",
			"clinics":         "/api/clinics",
			"appointments":    "/api/appointments",
			"medical_records": "/api/medical-records",
			"reminders":       "/api/reminders",
			"symptom_checks":  "/api/symptom-checks",
			"ai_chat":         "/api/ai-chat",
			"docs":            "/swagger/index.html",
		},
	})
}
