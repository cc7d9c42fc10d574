package smtp

import (
	"context"
	"testing"

	"woofy-api/internal/ports/mail"

	"github.com/stretchr/testify/assert"
)

func TestSend_NotConfigured(t *testing.T) {
	err := New(Config{}).Send(context.Background(), mail.Message{To: "ana@woofy.app"})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestBuild_Headers(t *testing.T) {
	s := New(Config{Host: "smtp.example.com", User: "bot@woofy.app", Pass: "x"})
	assert.True(t, s.IsConfigured())

	m := s.build(mail.Message{To: "ana@woofy.app", Subject: "Recordatorio", HTML: "<p>hola</p>"})
	assert.Equal(t, []string{"bot@woofy.app"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@woofy.app"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Recordatorio"}, m.GetHeader("Subject"))
}

func TestSend_CancelledContext(t *testing.T) {
	s := New(Config{Host: "smtp.example.com", User: "bot@woofy.app"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, mail.Message{To: "a@b.c"}), context.Canceled)
}
