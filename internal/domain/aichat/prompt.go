package aichat

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"woofy-api/internal/ports/completion"
)

const (
	temperature = 0.8
	maxTokens   = 500
	titleRunes  = 50
)

const systemPrompt = `Eres "WooFy Assistant", un asistente veterinario inteligente y amigable.
Tu objetivo es ayudar a los dueños de mascotas con información sobre cuidado, salud y bienestar animal.

Pautas:
- Sé empático y comprensivo
- Proporciona información precisa y útil
- SIEMPRE recomienda consultar a un veterinario profesional para diagnósticos y tratamientos
- No proporciones diagnósticos definitivos ni prescripciones médicas
- Si la situación parece urgente, enfatiza la necesidad de atención veterinaria inmediata
- Responde en español de manera clara y concisa`

// SystemPrompt agrega el bloque de contexto de la mascota cuando existe.
func SystemPrompt(pet *PetContext) string {
	if pet == nil {
		return systemPrompt
	}
	b, err := json.MarshalIndent(pet, "", "  ")
	if err != nil {
		return systemPrompt
	}
	return systemPrompt + "\n\nContexto de la mascota actual:\n" + string(b)
}

// BuildMessages arma [system] + historial (en orden) + mensaje nuevo.
func BuildMessages(history []Message, content string, pet *PetContext) []completion.Message {
	out := make([]completion.Message, 0, len(history)+2)
	out = append(out, completion.Message{Role: completion.RoleSystem, Content: SystemPrompt(pet)})
	for _, m := range history {
		out = append(out, completion.Message{Role: completion.Role(m.Role), Content: m.Content})
	}
	return append(out, completion.Message{Role: completion.RoleUser, Content: content})
}

// TitleFrom toma las primeras 50 runas del mensaje, con "..." si se cortó.
func TitleFrom(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= titleRunes {
		return content
	}
	return string([]rune(content)[:titleRunes]) + "..."
}

func needsTitle(title string) bool {
	t := strings.TrimSpace(title)
	return t == "" || t == DefaultTitle
}
