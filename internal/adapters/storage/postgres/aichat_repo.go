package postgres

import (
	"context"
	"database/sql"
	"errors"

	"woofy-api/internal/domain/aichat"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

type chatRepo struct {
	db *sql.DB
}

func (r *chatRepo) ListConversations(ctx context.Context, userID string) ([]aichat.Conversation, error) {
	rows, err := query(ctx, r.db, dialect.From("ai_conversations").Prepared(true).
		Select("id", "user_id", "title", "created_at", "updated_at").
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.I("updated_at").Desc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]aichat.Conversation, 0)
	for rows.Next() {
		var c aichat.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *chatRepo) GetConversation(ctx context.Context, id, userID string) (aichat.Conversation, error) {
	row, err := queryRow(ctx, r.db, dialect.From("ai_conversations").Prepared(true).
		Select("id", "user_id", "title", "created_at", "updated_at").
		Where(goqu.Ex{"id": id, "user_id": userID}))
	if err != nil {
		return aichat.Conversation{}, err
	}

	var c aichat.Conversation
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return aichat.Conversation{}, notFound(err, aichat.ErrNotFound)
	}
	return c, nil
}

func (r *chatRepo) CreateConversation(ctx context.Context, c aichat.Conversation) error {
	_, err := exec(ctx, r.db, dialect.Insert("ai_conversations").Prepared(true).Rows(goqu.Record{
		"id":         c.ID,
		"user_id":    c.UserID,
		"title":      c.Title,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}))
	return err
}

func (r *chatRepo) UpdateConversation(ctx context.Context, c aichat.Conversation) error {
	n, err := exec(ctx, r.db, dialect.Update("ai_conversations").Prepared(true).
		Set(goqu.Record{"title": c.Title, "updated_at": c.UpdatedAt}).
		Where(goqu.Ex{"id": c.ID, "user_id": c.UserID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return aichat.ErrNotFound
	}
	return nil
}

// DeleteConversation: los mensajes caen por ON DELETE CASCADE.
func (r *chatRepo) DeleteConversation(ctx context.Context, id, userID string) error {
	_, err := exec(ctx, r.db, dialect.Delete("ai_conversations").Prepared(true).
		Where(goqu.Ex{"id": id, "user_id": userID}))
	return err
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID string) ([]aichat.Message, error) {
	rows, err := query(ctx, r.db, dialect.From("ai_messages").Prepared(true).
		Select("id", "conversation_id", "role", "content", "created_at").
		Where(goqu.C("conversation_id").Eq(conversationID)).
		Order(goqu.I("created_at").Asc(), goqu.I("seq").Asc()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]aichat.Message, 0)
	for rows.Next() {
		var (
			m    aichat.Message
			role string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = aichat.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *chatRepo) AddMessage(ctx context.Context, m aichat.Message) error {
	_, err := exec(ctx, r.db, dialect.Insert("ai_messages").Prepared(true).Rows(goqu.Record{
		"id":              m.ID,
		"conversation_id": m.ConversationID,
		"role":            string(m.Role),
		"content":         m.Content,
		"created_at":      m.CreatedAt,
	}))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return aichat.ErrNotFound
	}
	return err
}
