package mail

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("mail transport not configured")

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}
