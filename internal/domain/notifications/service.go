// Package notifications renderiza los correos transaccionales y los entrega
// al transporte. Nunca propaga errores: el resultado es siempre un Result.
package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"woofy-api/internal/platform/logger"
	"woofy-api/internal/ports/mail"
)

const (
	msgSent          = "Email enviado correctamente"
	msgNotConfigured = "Email no configurado"
	msgFailed        = "Error al enviar email"
)

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ReminderEmail struct {
	Title       string
	Description string
	PetName     string
	DueAt       time.Time
}

type AppointmentEmail struct {
	ClinicName  string
	ServiceName string
	PetName     string
	StartsAt    time.Time
	Notes       string
}

type Service struct {
	sender mail.Sender
	log    logger.Logger
	loc    *time.Location
}

// NewService: sender puede ser nil (todas las llamadas devuelven Success=false).
func NewService(sender mail.Sender, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{sender: sender, log: log.With(map[string]any{"component": "notifications"}), loc: time.UTC}
}

func (s *Service) SendReminderEmail(ctx context.Context, to string, d ReminderEmail) Result {
	return s.send(ctx, to, "Recordatorio: "+d.Title, reminderTmpl, map[string]any{
		"Title":       d.Title,
		"Description": d.Description,
		"PetName":     d.PetName,
		"When":        FormatDate(d.DueAt.In(s.loc)),
	})
}

func (s *Service) SendAppointmentConfirmation(ctx context.Context, to string, d AppointmentEmail) Result {
	return s.send(ctx, to, "Confirmación de Cita - "+d.ClinicName, appointmentTmpl, map[string]any{
		"ClinicName":  d.ClinicName,
		"ServiceName": d.ServiceName,
		"PetName":     d.PetName,
		"When":        FormatDate(d.StartsAt.In(s.loc)),
		"Notes":       d.Notes,
	})
}

func (s *Service) SendWelcomeEmail(ctx context.Context, to, name string) Result {
	return s.send(ctx, to, "¡Bienvenido a WooFy!", welcomeTmpl, map[string]any{"Name": name})
}

func (s *Service) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) Result {
	if s == nil || s.sender == nil {
		return Result{Success: false, Message: msgNotConfigured}
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return Result{Success: false, Message: msgFailed}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.log.Error("render email failed", map[string]any{"template": tmpl.Name(), "err": err})
		return Result{Success: false, Message: msgFailed}
	}

	err := s.sender.Send(ctx, mail.Message{To: to, Subject: subject, HTML: buf.String()})
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		s.log.Warn("mail transport not configured", map[string]any{"template": tmpl.Name()})
		return Result{Success: false, Message: msgNotConfigured}
	case err != nil:
		s.log.Error("send email failed", map[string]any{"template": tmpl.Name(), "to": to, "err": err})
		return Result{Success: false, Message: msgFailed}
	}

	s.log.Info("email sent", map[string]any{"template": tmpl.Name(), "to": to})
	return Result{Success: true, Message: msgSent}
}

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// FormatDate: "lunes, 6 de enero de 2025, 10:30".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d, %02d:%02d",
		weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
