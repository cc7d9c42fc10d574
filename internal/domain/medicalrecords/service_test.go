package medicalrecords

import (
	"context"
	"sort"
	"testing"
	"time"

	"woofy-api/internal/domain/pets"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petID = "11111111-1111-4111-8111-111111111111"

type testRepo struct {
	byID  map[string]Record
	owner string
}

func (r *testRepo) ListByPet(_ context.Context, pid string, typ *Type) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.PetID != pid || (typ != nil && rec.Type != *typ) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *testRepo) Get(_ context.Context, id string) (Detail, error) {
	rec, ok := r.byID[id]
	if !ok {
		return Detail{}, ErrNotFound
	}
	return Detail{Record: rec, Pet: PetSummary{ID: rec.PetID, Name: "Rex", UserID: r.owner}}, nil
}

func (r *testRepo) Create(_ context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Update(_ context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type testPets struct{ owner string }

func (p testPets) RequireOwned(_ context.Context, userID, id string) (pets.Pet, error) {
	if id != petID || userID != p.owner {
		return pets.Pet{}, apperrors.NotFound("Mascota no encontrada")
	}
	return pets.Pet{ID: id, UserID: userID}, nil
}

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{byID: map[string]Record{}, owner: "user-1"}
	svc := NewService(repo, testPets{owner: "user-1"})
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-06-15")
	require.True(t, ok)
	assert.Equal(t, "2024-06-15", FormatDate(d))

	d, ok = ParseDate("2024-06-15T23:10:00Z")
	require.True(t, ok)
	assert.Equal(t, "2024-06-15", FormatDate(d))

	_, ok = ParseDate("15/06/2024")
	assert.False(t, ok)
}

func TestCreateAndListByPet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", petID, CreateInput{Type: "vaccine", Date: "2024-01-10"})
	require.NoError(t, err)
	latest, err := svc.Create(ctx, "user-1", petID, CreateInput{Type: "weight", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, latest.Attachments)

	all, err := svc.ListByPet(ctx, "user-1", petID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, latest.ID, all[0].ID)

	vaccines, err := svc.ListByPet(ctx, "user-1", petID, "vaccine")
	require.NoError(t, err)
	require.Len(t, vaccines, 1)

	_, err = svc.ListByPet(ctx, "user-1", petID, "haircut")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = svc.ListByPet(ctx, "intruder", petID, "")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", petID, CreateInput{Type: "haircut", Date: "2024-01-10"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, "user-1", petID, CreateInput{Type: "vaccine", Date: "ayer"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, "intruder", petID, CreateInput{Type: "vaccine", Date: "2024-01-10"})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, ae.Kind)
	assert.Equal(t, "La mascota no pertenece al usuario", ae.Message)
}

func TestGetUpdateDelete_OwnerViaParentPet(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	notes := "dosis anual"
	rec, err := svc.Create(ctx, "user-1", petID, CreateInput{Type: "vaccine", Date: "2024-01-10", Notes: &notes})
	require.NoError(t, err)

	d, err := svc.Get(ctx, "user-1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", d.Pet.UserID)

	_, err = svc.Get(ctx, "intruder", rec.ID)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Registro médico no encontrado", ae.Message)

	updated, err := svc.Update(ctx, "user-1", rec.ID, UpdateInput{
		Notes:       patch.Null[string](),
		Attachments: patch.Value([]string{"https://files.woofy.app/cert.pdf"}),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)
	assert.Equal(t, TypeVaccine, updated.Type)
	assert.Len(t, updated.Attachments, 1)

	_, err = svc.Update(ctx, "user-1", rec.ID, UpdateInput{Type: patch.Null[string]()})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	assert.True(t, apperrors.Is(svc.Delete(ctx, "intruder", rec.ID), apperrors.KindNotFound))
	require.NoError(t, svc.Delete(ctx, "user-1", rec.ID))
	assert.Empty(t, repo.byID)
	assert.True(t, apperrors.Is(svc.Delete(ctx, "user-1", rec.ID), apperrors.KindNotFound))
}
