package completion

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured: no hay credenciales para el endpoint de completions.
	ErrNotConfigured = errors.New("completion endpoint not configured")
	// ErrUnavailable: el endpoint no respondió o devolvió error.
	ErrUnavailable = errors.New("completion endpoint unavailable")
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Request struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	// JSON pide que la respuesta sea un objeto JSON válido.
	JSON bool
}

// Completer envía una secuencia ordenada de turnos y devuelve el texto generado.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Stream entrega fragmentos a onDelta en orden y devuelve el texto completo.
	Stream(ctx context.Context, req Request, onDelta func(delta string) error) (string, error)
}
