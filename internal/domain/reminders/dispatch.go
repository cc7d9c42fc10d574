package reminders

import (
	"context"
	"time"

	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/platform/logger"
)

type EmailLookup interface {
	EmailOf(ctx context.Context, userID string) (string, error)
}

type ReminderSender interface {
	SendReminderEmail(ctx context.Context, to string, d notifications.ReminderEmail) notifications.Result
}

// Dispatcher envía por correo los recordatorios vencidos y los marca como
// enviados. Un recordatorio que no se pudo enviar queda pendiente para la
// próxima corrida.
type Dispatcher struct {
	repo   Repository
	emails EmailLookup
	mailer ReminderSender
	log    logger.Logger
	now    func() time.Time
}

type DispatchStats struct {
	Due     int
	Sent    int
	Skipped int
	Failed  int
}

func NewDispatcher(repo Repository, emails EmailLookup, mailer ReminderSender, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		repo:   repo,
		emails: emails,
		mailer: mailer,
		log:    log.With(map[string]any{"component": "reminders.dispatch"}),
		now:    time.Now,
	}
}

// Run recorre en páginas de limit los recordatorios con due_at <= now+lookahead.
// Los que quedan pendientes (sin email o con fallo de envío) no bloquean a
// los siguientes: cada página continúa después de la última fila vista.
func (d *Dispatcher) Run(ctx context.Context, lookahead time.Duration, limit int) (DispatchStats, error) {
	var (
		st     DispatchStats
		cursor *DueCursor
	)
	until := d.now().Add(lookahead)

	for {
		page, err := d.repo.ListDue(ctx, until, cursor, limit)
		if err != nil {
			return st, err
		}
		st.Due += len(page)

		for _, rem := range page {
			if err := ctx.Err(); err != nil {
				return st, err
			}
			if err := d.dispatch(ctx, rem, &st); err != nil {
				return st, err
			}
		}

		if limit <= 0 || len(page) < limit {
			break
		}
		last := page[len(page)-1]
		cursor = &DueCursor{DueAt: last.DueAt, ID: last.ID}
	}

	d.log.Info("reminders dispatched", map[string]any{
		"due":     st.Due,
		"sent":    st.Sent,
		"skipped": st.Skipped,
		"failed":  st.Failed,
	})
	return st, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, rem WithPet, st *DispatchStats) error {
	to, err := d.emails.EmailOf(ctx, rem.Pet.UserID)
	if err != nil || to == "" {
		st.Skipped++
		d.log.Warn("reminder skipped: owner has no email", map[string]any{"reminder_id": rem.ID, "err": err})
		return nil
	}

	mail := notifications.ReminderEmail{
		Title:   rem.Title,
		PetName: rem.Pet.Name,
		DueAt:   rem.DueAt,
	}
	if rem.Description != nil {
		mail.Description = *rem.Description
	}

	res := d.mailer.SendReminderEmail(ctx, to, mail)
	if !res.Success {
		st.Failed++
		d.log.Warn("reminder not sent", map[string]any{"reminder_id": rem.ID, "reason": res.Message})
		return nil
	}

	if err := d.repo.MarkSent(ctx, rem.ID, d.now()); err != nil {
		return err
	}
	st.Sent++
	return nil
}
