package memory

import (
	"context"
	"sort"

	"woofy-api/internal/domain/aichat"
)

type chatRepo struct{ s *Store }

func (r *chatRepo) ListConversations(ctx context.Context, userID string) ([]aichat.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]aichat.Conversation, 0)
	for _, c := range r.s.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *chatRepo) GetConversation(ctx context.Context, id, userID string) (aichat.Conversation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.conversations[id]
	if !ok || c.UserID != userID {
		return aichat.Conversation{}, aichat.ErrNotFound
	}
	return c, nil
}

func (r *chatRepo) CreateConversation(ctx context.Context, c aichat.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.conversations[c.ID] = c
	return nil
}

func (r *chatRepo) UpdateConversation(ctx context.Context, c aichat.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.conversations[c.ID]
	if !ok || cur.UserID != c.UserID {
		return aichat.ErrNotFound
	}
	cur.Title = c.Title
	cur.UpdatedAt = c.UpdatedAt
	r.s.conversations[c.ID] = cur
	return nil
}

func (r *chatRepo) DeleteConversation(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.conversations[id]
	if !ok || c.UserID != userID {
		return nil
	}
	delete(r.s.conversations, id)

	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.ConversationID != id {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	return nil
}

func (r *chatRepo) ListMessages(ctx context.Context, conversationID string) ([]aichat.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]aichat.Message, 0)
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *chatRepo) AddMessage(ctx context.Context, m aichat.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.conversations[m.ConversationID]; !ok {
		return aichat.ErrNotFound
	}
	r.s.messages = append(r.s.messages, m)
	return nil
}
