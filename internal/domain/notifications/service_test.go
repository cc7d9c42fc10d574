package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"woofy-api/internal/ports/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func TestSendReminderEmail(t *testing.T) {
	sender := &fakeSender{}
	res := NewService(sender, nil).SendReminderEmail(context.Background(), "ana@woofy.app", ReminderEmail{
		Title:   "Vacuna <rabia>",
		PetName: "Rex",
		DueAt:   time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC),
	})

	assert.Equal(t, Result{Success: true, Message: "Email enviado correctamente"}, res)
	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, "Recordatorio: Vacuna <rabia>", m.Subject)
	assert.Contains(t, m.HTML, "Vacuna &lt;rabia&gt;")
	assert.Contains(t, m.HTML, "No hay descripción adicional")
	assert.Contains(t, m.HTML, "lunes, 6 de enero de 2025, 10:30")
}

func TestSendAppointmentConfirmation_OptionalNotes(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, nil)

	svc.SendAppointmentConfirmation(context.Background(), "a@b.c", AppointmentEmail{ClinicName: "VetCare", ServiceName: "Consulta", PetName: "Rex"})
	svc.SendAppointmentConfirmation(context.Background(), "a@b.c", AppointmentEmail{ClinicName: "VetCare", Notes: "ayuno"})

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "Confirmación de Cita - VetCare", sender.sent[0].Subject)
	assert.NotContains(t, sender.sent[0].HTML, "Notas:")
	assert.Contains(t, sender.sent[1].HTML, "<strong>Notas:</strong> ayuno")
}

func TestSendWelcomeEmail_DefaultName(t *testing.T) {
	sender := &fakeSender{}
	NewService(sender, nil).SendWelcomeEmail(context.Background(), "a@b.c", "")
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].HTML, "Hola amigo perruno,")
}

func TestFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()

	res := NewService(&fakeSender{err: errors.New("smtp: 554")}, nil).SendWelcomeEmail(ctx, "a@b.c", "Ana")
	assert.Equal(t, Result{Success: false, Message: "Error al enviar email"}, res)

	res = NewService(&fakeSender{err: mail.ErrNotConfigured}, nil).SendWelcomeEmail(ctx, "a@b.c", "Ana")
	assert.Equal(t, Result{Success: false, Message: "Email no configurado"}, res)

	res = NewService(nil, nil).SendWelcomeEmail(ctx, "a@b.c", "Ana")
	assert.False(t, res.Success)
}
