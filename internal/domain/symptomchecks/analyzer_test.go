package symptomchecks

import (
	"context"
	"fmt"
	"testing"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/ports/completion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	got   []completion.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

func (f *fakeCompleter) Stream(ctx context.Context, req completion.Request, onDelta func(string) error) (string, error) {
	out, err := f.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return out, onDelta(out)
}

func TestBuildPrompt_UnspecifiedFields(t *testing.T) {
	zero := 0
	p := BuildPrompt(pets.Pet{Name: "Rex", AgeMonths: &zero}, "vomiting and lethargy for two days")

	assert.Contains(t, p, "- Nombre: Rex\n")
	assert.Contains(t, p, "- Raza: No especificada\n")
	assert.Contains(t, p, "- Edad: No especificada\n")
	assert.Contains(t, p, "- Peso: No especificado\n")
	assert.Contains(t, p, "Síntomas reportados:\nvomiting and lethargy for two days\n")
	assert.Contains(t, p, `"triage_level": "low|medium|high"`)
}

func TestBuildPrompt_WithAttributes(t *testing.T) {
	breed, age, kg := "Beagle", 24, 12.5
	p := BuildPrompt(pets.Pet{Name: "Rex", Breed: &breed, AgeMonths: &age, WeightKg: &kg}, "tos seca desde ayer")

	assert.Contains(t, p, "- Raza: Beagle\n")
	assert.Contains(t, p, "- Edad: 24 meses\n")
	assert.Contains(t, p, "- Peso: 12.5 kg\n")
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		level TriageLevel
	}{
		{"valid", `{"triage_level":"high","advice":"Ir al veterinario","next_actions":["a"],"possible_causes":["b"]}`, TriageHigh},
		{"uppercase", `{"triage_level":"LOW","advice":"x"}`, TriageMedium},
		{"padded", `{"triage_level":" low ","advice":"x"}`, TriageMedium},
		{"unknown level", `{"triage_level":"critical","advice":"x"}`, TriageMedium},
		{"missing level", `{"advice":"x"}`, TriageMedium},
		{"null level", `{"triage_level":null,"advice":"x"}`, TriageMedium},
		{"numeric level", `{"triage_level":3,"advice":"x"}`, TriageMedium},
		{"array level", `{"triage_level":["high"],"advice":"x"}`, TriageMedium},
		{"object level", `{"triage_level":{"value":"high"},"advice":"x"}`, TriageMedium},
		{"fenced", "```json\n{\"triage_level\":\"low\",\"advice\":\"x\"}\n```", TriageLow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := ParseAnalysis(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.level, a.TriageLevel)
			assert.NotNil(t, a.NextActions)
			assert.NotNil(t, a.PossibleCauses)
		})
	}

	_, err := ParseAnalysis("no es json")
	assert.Error(t, err)
}

func TestParseAnalysis_WrongFieldTypes(t *testing.T) {
	a, err := ParseAnalysis(`{"triage_level":"low","advice":42,"next_actions":"llamar","possible_causes":{"a":1}}`)
	require.NoError(t, err)
	assert.Equal(t, TriageLow, a.TriageLevel)
	assert.Equal(t, "", a.Advice)
	assert.Equal(t, []string{}, a.NextActions)
	assert.Equal(t, []string{}, a.PossibleCauses)

	a, err = ParseAnalysis(`{"triage_level":"high","advice":"Reposo","next_actions":["Hidratar",7,null,"Observar"]}`)
	require.NoError(t, err)
	assert.Equal(t, "Reposo", a.Advice)
	assert.Equal(t, []string{"Hidratar", "Observar"}, a.NextActions)
}

func TestAnalyze_RequestShape(t *testing.T) {
	fc := &fakeCompleter{reply: `{"triage_level":"low","advice":"Reposo"}`}
	a, err := NewAnalyzer(fc).Analyze(context.Background(), pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	require.NoError(t, err)
	assert.Equal(t, "Reposo", a.Advice)

	require.Len(t, fc.got, 1)
	req := fc.got[0]
	assert.True(t, req.JSON)
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, completion.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, completion.RoleUser, req.Messages[1].Role)
}

func TestAnalyze_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := NewAnalyzer(nil).Analyze(ctx, pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	assert.True(t, apperrors.Is(err, apperrors.KindServiceUnavailable))

	fc := &fakeCompleter{err: fmt.Errorf("%w: timeout", completion.ErrUnavailable)}
	_, err = NewAnalyzer(fc).Analyze(ctx, pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindServiceUnavailable, ae.Kind)
	assert.Equal(t, "El servicio de análisis de síntomas no está disponible temporalmente", ae.Message)

	_, err = NewAnalyzer(&fakeCompleter{err: completion.ErrNotConfigured}).Analyze(ctx, pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	assert.True(t, apperrors.Is(err, apperrors.KindServiceUnavailable))

	a, err := NewAnalyzer(&fakeCompleter{reply: `{"triage_level":3,"advice":"x"}`}).Analyze(ctx, pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	require.NoError(t, err)
	assert.Equal(t, TriageMedium, a.TriageLevel)

	_, err = NewAnalyzer(&fakeCompleter{reply: "lo siento"}).Analyze(ctx, pets.Pet{Name: "Rex"}, "estornudos frecuentes")
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
}
