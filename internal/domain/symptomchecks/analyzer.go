package symptomchecks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/ports/completion"
)

const (
	temperature = 0.7

	msgUnavailable = "El servicio de análisis de síntomas no está disponible temporalmente"
	msgBadOutput   = "Error al procesar el análisis de síntomas"

	systemPrompt = "Eres un asistente veterinario experto que proporciona análisis preliminares de síntomas. " +
		"Siempre recomiendas consultar a un veterinario para diagnósticos definitivos."
)

// Analyzer arma el prompt de triage y normaliza la respuesta del modelo.
type Analyzer struct {
	completer completion.Completer
}

func NewAnalyzer(c completion.Completer) *Analyzer {
	return &Analyzer{completer: c}
}

func (a *Analyzer) Analyze(ctx context.Context, pet pets.Pet, symptoms string) (Analysis, error) {
	if a.completer == nil {
		return Analysis{}, apperrors.ServiceUnavailable(msgUnavailable, completion.ErrNotConfigured)
	}

	out, err := a.completer.Complete(ctx, completion.Request{
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: systemPrompt},
			{Role: completion.RoleUser, Content: BuildPrompt(pet, symptoms)},
		},
		Temperature: temperature,
		JSON:        true,
	})
	if err != nil {
		if errors.Is(err, completion.ErrNotConfigured) || errors.Is(err, completion.ErrUnavailable) {
			return Analysis{}, apperrors.ServiceUnavailable(msgUnavailable, err)
		}
		return Analysis{}, apperrors.Internal(msgBadOutput, err)
	}

	res, err := ParseAnalysis(out)
	if err != nil {
		return Analysis{}, apperrors.Internal(msgBadOutput, err)
	}
	return res, nil
}

// BuildPrompt: los datos ausentes (o en cero) se muestran como no especificados.
func BuildPrompt(p pets.Pet, symptoms string) string {
	breed := "No especificada"
	if p.Breed != nil && strings.TrimSpace(*p.Breed) != "" {
		breed = *p.Breed
	}
	age := "No especificada"
	if p.AgeMonths != nil && *p.AgeMonths > 0 {
		age = fmt.Sprintf("%d meses", *p.AgeMonths)
	}
	weight := "No especificado"
	if p.WeightKg != nil && *p.WeightKg > 0 {
		weight = strconv.FormatFloat(*p.WeightKg, 'f', -1, 64) + " kg"
	}

	var b strings.Builder
	b.WriteString("Eres un asistente veterinario experto. Analiza los siguientes síntomas de una mascota:\n\n")
	b.WriteString("Información de la mascota:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", p.Name)
	fmt.Fprintf(&b, "- Raza: %s\n", breed)
	fmt.Fprintf(&b, "- Edad: %s\n", age)
	fmt.Fprintf(&b, "- Peso: %s\n\n", weight)
	b.WriteString("Síntomas reportados:\n")
	b.WriteString(symptoms)
	b.WriteString("\n\nPor favor proporciona:\n")
	b.WriteString("1. Nivel de urgencia (low, medium, high)\n")
	b.WriteString("2. Posibles causas\n")
	b.WriteString("3. Recomendaciones inmediatas\n")
	b.WriteString("4. Próximos pasos\n\n")
	b.WriteString("Responde en formato JSON con esta estructura:\n")
	b.WriteString(`{
  "triage_level": "low|medium|high",
  "possible_causes": ["causa 1", "causa 2"],
  "advice": "texto con recomendaciones",
  "next_actions": ["acción 1", "acción 2"]
}`)
	return b.String()
}

type rawAnalysis struct {
	TriageLevel    json.RawMessage `json:"triage_level"`
	PossibleCauses json.RawMessage `json:"possible_causes"`
	Advice         json.RawMessage `json:"advice"`
	NextActions    json.RawMessage `json:"next_actions"`
}

// ParseAnalysis tolera un bloque ```json alrededor del objeto. Solo falla si
// la salida no es un objeto JSON: un nivel que no sea exactamente low, medium
// o high queda en medium, y un campo con tipo incorrecto queda vacío.
func ParseAnalysis(text string) (Analysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return Analysis{}, fmt.Errorf("parse triage output: %w", err)
	}

	level := TriageLevel(decodeString(raw.TriageLevel))
	if !level.Valid() {
		level = TriageMedium
	}
	return Analysis{
		TriageLevel:    level,
		PossibleCauses: decodeStrings(raw.PossibleCauses),
		Advice:         decodeString(raw.Advice),
		NextActions:    decodeStrings(raw.NextActions),
	}, nil
}

func decodeString(msg json.RawMessage) string {
	var s string
	if len(msg) == 0 || json.Unmarshal(msg, &s) != nil {
		return ""
	}
	return s
}

// decodeStrings descarta los elementos que no son strings.
func decodeStrings(msg json.RawMessage) []string {
	var items []json.RawMessage
	if len(msg) == 0 || json.Unmarshal(msg, &items) != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
