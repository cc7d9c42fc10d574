package symptomchecks

import (
	"context"
	"testing"
	"time"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petID = "11111111-1111-4111-8111-111111111111"

type testRepo struct {
	rows  []Check
	owner string
}

func (r *testRepo) ListByPet(_ context.Context, pid string) ([]Check, error) {
	out := make([]Check, 0)
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].PetID == pid {
			out = append(out, r.rows[i])
		}
	}
	return out, nil
}

func (r *testRepo) Get(_ context.Context, id string) (Detail, error) {
	for _, c := range r.rows {
		if c.ID == id {
			return Detail{Check: c, Pet: PetSummary{ID: c.PetID, Name: "Rex", UserID: r.owner}}, nil
		}
	}
	return Detail{}, ErrNotFound
}

func (r *testRepo) Create(_ context.Context, c Check) error {
	r.rows = append(r.rows, c)
	return nil
}

type testPets struct{ owner string }

func (p testPets) RequireOwned(_ context.Context, userID, id string) (pets.Pet, error) {
	if id != petID || userID != p.owner {
		return pets.Pet{}, apperrors.NotFound("Mascota no encontrada")
	}
	return pets.Pet{ID: id, UserID: userID, Name: "Rex"}, nil
}

func newTestService(reply string) (*Service, *testRepo, *fakeCompleter) {
	repo := &testRepo{owner: "user-1"}
	fc := &fakeCompleter{reply: reply}
	svc := NewService(repo, testPets{owner: "user-1"}, NewAnalyzer(fc))
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, fc
}

func TestCreate_PersistsWithoutPossibleCauses(t *testing.T) {
	svc, repo, _ := newTestService(`{"triage_level":"urgent","possible_causes":["gastritis"],"advice":"Hidratar","next_actions":["Consultar veterinario"]}`)
	ctx := context.Background()

	res, err := svc.Create(ctx, "user-1", petID, CreateInput{Symptoms: "vomiting and lethargy for two days"})
	require.NoError(t, err)
	assert.Equal(t, TriageMedium, res.TriageLevel)
	assert.Equal(t, []string{"gastritis"}, res.PossibleCauses)
	assert.Equal(t, []string{"Consultar veterinario"}, res.NextActions)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, TriageMedium, repo.rows[0].TriageLevel)

	d, err := svc.Get(ctx, "user-1", res.ID)
	require.NoError(t, err)
	assert.Equal(t, "vomiting and lethargy for two days", d.Symptoms)
	assert.Equal(t, "user-1", d.Pet.UserID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, fc := newTestService(`{}`)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", petID, CreateInput{Symptoms: "  tos  "})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, "intruder", petID, CreateInput{Symptoms: "vomiting and lethargy"})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "La mascota no pertenece al usuario", ae.Message)

	assert.Empty(t, fc.got)
}

func TestCreate_UnavailableDoesNotPersist(t *testing.T) {
	repo := &testRepo{owner: "user-1"}
	svc := NewService(repo, testPets{owner: "user-1"}, NewAnalyzer(nil))

	_, err := svc.Create(context.Background(), "user-1", petID, CreateInput{Symptoms: "vomiting and lethargy"})
	assert.True(t, apperrors.Is(err, apperrors.KindServiceUnavailable))
	assert.Empty(t, repo.rows)
}

func TestListAndGet_Ownership(t *testing.T) {
	svc, _, _ := newTestService(`{"triage_level":"low","advice":"x"}`)
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", petID, CreateInput{Symptoms: "estornudos frecuentes"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "user-1", petID, CreateInput{Symptoms: "picazón en las orejas"})
	require.NoError(t, err)

	items, err := svc.ListByPet(ctx, "user-1", petID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	_, err = svc.ListByPet(ctx, "intruder", petID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = svc.Get(ctx, "intruder", first.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	_, err = svc.Get(ctx, "user-1", "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
