package aichat

import (
	"context"
	"net/http"
	"time"

	"woofy-api/internal/middleware"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/logger"
	"woofy-api/internal/platform/response"
	"woofy-api/internal/platform/validate"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: originPatterns son los orígenes aceptados por el websocket
// del stream (mismo formato que CORS); sin patrones solo se acepta el mismo host.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, originPatterns ...string) {
	r.Route("/ai-chat/conversations", func(cr chi.Router) {
		cr.Get("/", listConversationsHandler(svc, log))
		cr.Post("/", createConversationHandler(svc, log))
		cr.Get("/{id}", getConversationHandler(svc, log))
		cr.Delete("/{id}", deleteConversationHandler(svc, log))
		cr.Post("/{id}/messages", sendMessageHandler(svc, log))
		cr.Get("/{id}/stream", streamHandler(svc, log, originPatterns))
	})
}

type conversationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type threadResponse struct {
	conversationResponse
	Messages []messageResponse `json:"messages"`
}

type exchangeResponse struct {
	UserMessage      messageResponse `json:"user_message"`
	AssistantMessage messageResponse `json:"assistant_message"`
}

// @Summary Listar conversaciones
// @Tags ai-chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} response.Envelope{data=[]conversationResponse}
// @Router /ai-chat/conversations [get]
func listConversationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		items, err := svc.List(r.Context(), uid)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		out := make([]conversationResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toConversationResponse(c))
		}
		response.OK(w, "Conversaciones obtenidas correctamente", out)
	}
}

func createConversationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := middleware.CurrentUser(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req CreateInput
		if r.ContentLength != 0 {
			if err := response.DecodeJSON(r, &req); err != nil {
				response.Error(w, r, log, err)
				return
			}
		}

		c, err := svc.Create(r.Context(), uid, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Conversación creada correctamente", toConversationResponse(c))
	}
}

// @Summary Obtener conversación
// @Description Conversación con sus mensajes en orden cronológico.
// @Tags ai-chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID de la conversación"
// @Success 200 {object} response.Envelope{data=threadResponse}
// @Failure 404 {object} response.Envelope
// @Router /ai-chat/conversations/{id} [get]
func getConversationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		t, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		msgs := make([]messageResponse, 0, len(t.Messages))
		for _, m := range t.Messages {
			msgs = append(msgs, toMessageResponse(m))
		}
		response.OK(w, "Conversación obtenida correctamente", threadResponse{
			conversationResponse: toConversationResponse(t.Conversation),
			Messages:             msgs,
		})
	}
}

func deleteConversationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, id); err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.OK(w, "Conversación eliminada correctamente", nil)
	}
}

// @Summary Enviar mensaje
// @Description Persiste el mensaje, obtiene la respuesta del asistente y la persiste.
// @Tags ai-chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID de la conversación"
// @Param payload body SendInput true "Mensaje"
// @Success 201 {object} response.Envelope{data=exchangeResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ai-chat/conversations/{id}/messages [post]
func sendMessageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}

		var req SendInput
		if err := response.DecodeJSON(r, &req); err != nil {
			response.Error(w, r, log, err)
			return
		}

		ex, err := svc.Send(r.Context(), uid, id, req)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		response.Created(w, "Mensaje enviado correctamente", toExchangeResponse(ex))
	}
}

// streamFrame es cada mensaje que el servidor escribe en el websocket.
type streamFrame struct {
	Type    string            `json:"type"`
	Content string            `json:"content,omitempty"`
	Message string            `json:"message,omitempty"`
	Data    *exchangeResponse `json:"data,omitempty"`
}

// firstFrameTimeout acota la espera del mensaje inicial; la respuesta del
// modelo no tiene deadline propio y termina cuando se cierra la conexión.
const firstFrameTimeout = 30 * time.Second

// streamHandler: el cliente abre el websocket y envía un único
// {"content","pet_id"}; recibe frames delta y al final done o error.
func streamHandler(svc *Service, log logger.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, id, err := userAndID(r)
		if err != nil {
			response.Error(w, r, log, err)
			return
		}
		// la conversación se valida antes del upgrade para poder responder 404 normal
		if _, err := svc.conversation(r.Context(), uid, id); err != nil {
			response.Error(w, r, log, err)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			log.Warn("websocket accept failed", map[string]any{"err": err})
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()

		var req SendInput
		readCtx, cancel := context.WithTimeout(ctx, firstFrameTimeout)
		err = wsjson.Read(readCtx, conn, &req)
		cancel()
		if err != nil {
			_ = wsjson.Write(ctx, conn, streamFrame{Type: "error", Message: "JSON inválido"})
			conn.Close(websocket.StatusUnsupportedData, "invalid json")
			return
		}

		ex, err := svc.Stream(ctx, uid, id, req, func(delta string) error {
			return wsjson.Write(ctx, conn, streamFrame{Type: "delta", Content: delta})
		})
		if err != nil {
			msg := "Error interno del servidor"
			if ae, ok := apperrors.As(err); ok && ae.Kind != apperrors.KindInternal {
				msg = ae.Message
			} else {
				log.Error("chat stream failed", map[string]any{"conversation_id": id, "err": err})
			}
			_ = wsjson.Write(ctx, conn, streamFrame{Type: "error", Message: msg})
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		done := toExchangeResponse(ex)
		if err := wsjson.Write(ctx, conn, streamFrame{Type: "done", Data: &done}); err != nil {
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}
}

func userAndID(r *http.Request) (string, string, error) {
	uid, err := middleware.CurrentUser(r)
	if err != nil {
		return "", "", err
	}
	id := chi.URLParam(r, "id")
	if err := validate.UUID("id", id); err != nil {
		return "", "", err
	}
	return uid, id, nil
}

func toConversationResponse(c Conversation) conversationResponse {
	return conversationResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func toExchangeResponse(ex Exchange) exchangeResponse {
	return exchangeResponse{
		UserMessage:      toMessageResponse(ex.UserMessage),
		AssistantMessage: toMessageResponse(ex.AssistantMessage),
	}
}
