// Command reminders envía por correo los recordatorios vencidos y los marca
// como enviados. Corre una vez o, con -every, en loop.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"woofy-api/internal/adapters/mail/smtp"
	pg "woofy-api/internal/adapters/storage/postgres"
	"woofy-api/internal/config"
	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/domain/profiles"
	"woofy-api/internal/domain/reminders"
	"woofy-api/internal/platform/logger"
)

func main() {
	var (
		lookahead time.Duration
		every     time.Duration
		limit     int
	)
	flag.DurationVar(&lookahead, "lookahead", 0, "Send reminders due up to now+lookahead")
	flag.DurationVar(&every, "every", 0, "Repeat every interval (0 = run once)")
	flag.IntVar(&limit, "limit", 200, "Page size when scanning due reminders")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:         logger.ParseLevel(cfg.LogLevel),
		Format:        logger.ParseFormat(cfg.LogFormat),
		App:           cfg.AppName + "-reminders",
		File:          cfg.LogFile,
		FileMaxSizeMB: cfg.LogMaxSizeMB,
		FileMaxAgeDay: cfg.LogMaxAgeDays,
	})

	if cfg.DBDSN == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	db, err := pg.Open(cfg.DBDSN)
	if err != nil {
		log.Error("failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := pg.NewStore(db)
	sender := smtp.New(smtp.Config{
		Host: cfg.EmailHost,
		Port: cfg.EmailPort,
		User: cfg.EmailUser,
		Pass: cfg.EmailPass,
		From: cfg.EmailFrom,
	})
	if !sender.IsConfigured() {
		log.Warn("email not configured, reminders will stay pending", nil)
	}

	d := reminders.NewDispatcher(
		store.Reminders(),
		profiles.NewService(store.Profiles(), nil),
		notifications.NewService(sender, log),
		log,
	)

	for {
		if _, err := d.Run(ctx, lookahead, limit); err != nil && ctx.Err() == nil {
			log.Error("reminders run failed", map[string]any{"error": err.Error()})
			if every <= 0 {
				os.Exit(1)
			}
		}
		if every <= 0 {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(every):
		}
	}
}
