package aichat

import (
	"context"
	"errors"
	"strings"
	"time"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/validate"
	"woofy-api/internal/ports/completion"

	"github.com/google/uuid"
)

const msgUnavailable = "El servicio de chat con IA no está disponible temporalmente"

type PetOwnership interface {
	RequireOwned(ctx context.Context, userID, petID string) (pets.Pet, error)
}

type Service struct {
	repo      Repository
	pets      PetOwnership
	completer completion.Completer
	log       logger.Logger
	now       func() time.Time
}

// NewService: completer puede ser nil (los envíos responden 503).
func NewService(repo Repository, pets PetOwnership, completer completion.Completer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		pets:      pets,
		completer: completer,
		log:       log.With(map[string]any{"component": "aichat"}),
		now:       time.Now,
	}
}

type CreateInput struct {
	Title *string `json:"title" validate:"omitempty,max=200"`
}

type SendInput struct {
	Content string  `json:"content" validate:"required,min=1,max=2000"`
	PetID   *string `json:"pet_id" validate:"omitempty,uuid"`
}

func (s *Service) List(ctx context.Context, userID string) ([]Conversation, error) {
	items, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("error al obtener conversaciones", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Thread, error) {
	c, err := s.conversation(ctx, userID, id)
	if err != nil {
		return Thread{}, err
	}
	msgs, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return Thread{}, apperrors.Internal("error al obtener mensajes", err)
	}
	return Thread{Conversation: c, Messages: msgs}, nil
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Conversation, error) {
	title := DefaultTitle
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
		if t != "" {
			title = t
		}
	}
	if err := validate.Struct(in); err != nil {
		return Conversation{}, err
	}

	now := s.now()
	c := Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateConversation(ctx, c); err != nil {
		return Conversation{}, apperrors.Internal("error al crear conversación", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteConversation(ctx, id, userID); err != nil {
		return apperrors.Internal("error al eliminar conversación", err)
	}
	return nil
}

// Send persiste el mensaje del usuario, pide la respuesta completa al modelo
// y la persiste como mensaje del asistente.
func (s *Service) Send(ctx context.Context, userID, id string, in SendInput) (Exchange, error) {
	return s.exchange(ctx, userID, id, in, func(req completion.Request) (string, error) {
		return s.completer.Complete(ctx, req)
	})
}

// Stream es Send entregando la respuesta por fragmentos a onDelta.
func (s *Service) Stream(ctx context.Context, userID, id string, in SendInput, onDelta func(string) error) (Exchange, error) {
	return s.exchange(ctx, userID, id, in, func(req completion.Request) (string, error) {
		return s.completer.Stream(ctx, req, onDelta)
	})
}

func (s *Service) exchange(ctx context.Context, userID, id string, in SendInput, call func(completion.Request) (string, error)) (Exchange, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate.Struct(in); err != nil {
		return Exchange{}, err
	}

	conv, err := s.conversation(ctx, userID, id)
	if err != nil {
		return Exchange{}, err
	}
	if s.completer == nil {
		return Exchange{}, apperrors.ServiceUnavailable(msgUnavailable, completion.ErrNotConfigured)
	}

	history, err := s.repo.ListMessages(ctx, id)
	if err != nil {
		return Exchange{}, apperrors.Internal("error al obtener mensajes", err)
	}

	userMsg := Message{
		ID:             uuid.NewString(),
		ConversationID: id,
		Role:           RoleUser,
		Content:        in.Content,
		CreatedAt:      s.now(),
	}
	if err := s.repo.AddMessage(ctx, userMsg); err != nil {
		return Exchange{}, apperrors.Internal("error al guardar mensaje", err)
	}

	reply, err := call(completion.Request{
		Messages:    BuildMessages(history, in.Content, s.petContext(ctx, userID, in.PetID)),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		if errors.Is(err, completion.ErrNotConfigured) || errors.Is(err, completion.ErrUnavailable) {
			return Exchange{}, apperrors.ServiceUnavailable(msgUnavailable, err)
		}
		return Exchange{}, apperrors.Internal("Error al generar respuesta del asistente", err)
	}

	assistantMsg := Message{
		ID:             uuid.NewString(),
		ConversationID: id,
		Role:           RoleAssistant,
		Content:        reply,
		CreatedAt:      s.now(),
	}
	if err := s.repo.AddMessage(ctx, assistantMsg); err != nil {
		return Exchange{}, apperrors.Internal("error al guardar mensaje", err)
	}

	if needsTitle(conv.Title) {
		conv.Title = TitleFrom(in.Content)
	}
	conv.UpdatedAt = s.now()
	if err := s.repo.UpdateConversation(ctx, conv); err != nil {
		s.log.Warn("conversation not updated after exchange", map[string]any{"conversation_id": id, "err": err})
	}

	return Exchange{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

// petContext resuelve la mascota sólo si es del usuario; si no, se ignora.
func (s *Service) petContext(ctx context.Context, userID string, petID *string) *PetContext {
	if petID == nil || strings.TrimSpace(*petID) == "" || s.pets == nil {
		return nil
	}
	p, err := s.pets.RequireOwned(ctx, userID, *petID)
	if err != nil {
		return nil
	}
	return &PetContext{
		Name:      p.Name,
		Breed:     p.Breed,
		AgeMonths: p.AgeMonths,
		WeightKg:  p.WeightKg,
	}
}

func (s *Service) conversation(ctx context.Context, userID, id string) (Conversation, error) {
	c, err := s.repo.GetConversation(ctx, id, userID)
	if errors.Is(err, ErrNotFound) {
		return Conversation{}, apperrors.NotFound("Conversación no encontrada")
	}
	if err != nil {
		return Conversation{}, apperrors.Internal("error al obtener conversación", err)
	}
	return c, nil
}
