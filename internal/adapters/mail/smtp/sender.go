package smtp

import (
	"context"
	"fmt"
	"strings"

	"woofy-api/internal/ports/mail"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Sender implementa mail.Sender sobre SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *Sender {
	s := &Sender{from: strings.TrimSpace(cfg.From)}
	if strings.TrimSpace(cfg.Host) == "" || strings.TrimSpace(cfg.User) == "" {
		return s
	}
	port := cfg.Port
	if port <= 0 {
		port = 587
	}
	s.dialer = gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass)
	if s.from == "" {
		s.from = cfg.User
	}
	return s
}

func (s *Sender) IsConfigured() bool {
	return s != nil && s.dialer != nil
}

func (s *Sender) Send(ctx context.Context, msg mail.Message) error {
	if !s.IsConfigured() {
		return mail.ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.build(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *Sender) build(msg mail.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}
