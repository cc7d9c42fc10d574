package aichat

import "time"

// DefaultTitle es el título de una conversación hasta su primer mensaje.
const DefaultTitle = "Nueva conversación"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message es inmutable una vez creado.
type Message struct {
	ID             string
	ConversationID string
	Role           Role
	Content        string
	CreatedAt      time.Time
}

type Thread struct {
	Conversation
	Messages []Message
}

// Exchange es el par persistido por cada envío.
type Exchange struct {
	UserMessage      Message
	AssistantMessage Message
}

// PetContext se serializa tal cual dentro del prompt de sistema.
type PetContext struct {
	Name      string   `json:"name"`
	Breed     *string  `json:"breed"`
	AgeMonths *int     `json:"age_months"`
	WeightKg  *float64 `json:"weight_kg"`
}
