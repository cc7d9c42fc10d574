package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"woofy-api/internal/adapters/auth/jwtverify"
	"woofy-api/internal/adapters/auth/supabase"
	"woofy-api/internal/adapters/completion/openai"
	"woofy-api/internal/adapters/mail/smtp"
	"woofy-api/internal/adapters/objectstore/s3"
	mem "woofy-api/internal/adapters/storage/memory"
	pg "woofy-api/internal/adapters/storage/postgres"
	"woofy-api/internal/config"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/ports/auth"
	"woofy-api/internal/ports/completion"
	"woofy-api/internal/ports/objectstore"
	"woofy-api/internal/router"
)

// @title WooFy API
// @version 1.0
// @description Backend de WooFy: mascotas, citas, historial médico, recordatorios, triage de síntomas y chat con IA.
// @BasePath /api
func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(cfg, log)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       log,
		Store:        store,
		Completer:    newCompleter(cfg, log),
		Mail: smtp.New(smtp.Config{
			Host: cfg.EmailHost,
			Port: cfg.EmailPort,
			User: cfg.EmailUser,
			Pass: cfg.EmailPass,
			From: cfg.EmailFrom,
		}),
		Photos:      newPhotoStore(ctx, cfg, log),
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// sin WriteTimeout: el stream del chat mantiene la conexión abierta
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr": srv.Addr,
			"env":  cfg.AppEnv,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped", nil)
	return nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:         logger.ParseLevel(cfg.LogLevel),
		Format:        logger.ParseFormat(cfg.LogFormat),
		App:           cfg.AppName,
		File:          cfg.LogFile,
		FileMaxSizeMB: cfg.LogMaxSizeMB,
		FileMaxAgeDay: cfg.LogMaxAgeDays,
	})
}

// openStore usa Postgres si hay DB_DSN; si no, memoria con clínicas demo.
func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (router.Stores, func(), error) {
	if cfg.DBDSN == "" {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
		store := mem.New()
		store.SeedDemo(time.Now().UTC())
		return store, func() {}, nil
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return pg.NewStore(db), func() { _ = db.Close() }, nil
}

var errNoVerifier = errors.New("auth: production requires SUPABASE_JWT_SECRET or SUPABASE_URL + SUPABASE_ANON_KEY")

// newVerifier devuelve nil (modo dev, identidad por X-Debug-User-ID) solo
// fuera de producción.
func newVerifier(cfg config.Config, log logger.Logger) (auth.AuthVerifier, error) {
	if cfg.SupabaseJWTSecret != "" {
		log.Info("auth: verifying HS256 tokens locally", nil)
		return jwtverify.New(cfg.SupabaseJWTSecret), nil
	}
	if cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "" {
		client, err := supabase.NewClient(supabase.Config{BaseURL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey})
		if err == nil {
			log.Info("auth: verifying tokens against identity provider", map[string]any{"url": cfg.SupabaseURL})
			return supabase.NewVerifier(client), nil
		}
		if cfg.IsProduction() {
			return nil, fmt.Errorf("auth: invalid identity provider config: %w", err)
		}
		log.Warn("auth: invalid identity provider config", map[string]any{"error": err.Error()})
	}
	if cfg.IsProduction() {
		return nil, errNoVerifier
	}
	log.Warn("auth: dev mode, identity taken from X-Debug-User-ID", nil)
	return nil, nil
}

func newCompleter(cfg config.Config, log logger.Logger) completion.Completer {
	c := openai.New(openai.Config{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL})
	if !c.IsConfigured() {
		log.Warn("OPENAI_API_KEY not set, AI features respond 503", nil)
		return nil
	}
	return c
}

func newPhotoStore(ctx context.Context, cfg config.Config, log logger.Logger) objectstore.Store {
	if cfg.StorageEndpoint == "" || cfg.StorageAccessKey == "" {
		return nil
	}
	st, err := s3.New(ctx, s3.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
		PublicURL: cfg.StoragePublicURL,
	})
	if err != nil {
		log.Warn("object storage unavailable, photo upload disabled", map[string]any{"error": err.Error()})
		return nil
	}
	return st
}
