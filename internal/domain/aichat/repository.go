package aichat

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("conversation not found")

type Repository interface {
	// ListConversations ordena por updated_at desc.
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	GetConversation(ctx context.Context, id, userID string) (Conversation, error)
	CreateConversation(ctx context.Context, c Conversation) error
	// UpdateConversation persiste title y updated_at; filtra por id + user_id.
	UpdateConversation(ctx context.Context, c Conversation) error
	// DeleteConversation borra también sus mensajes. Idempotente.
	DeleteConversation(ctx context.Context, id, userID string) error

	// ListMessages ordena por created_at asc (en empate, orden de inserción).
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	AddMessage(ctx context.Context, m Message) error
}
