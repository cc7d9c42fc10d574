package pets

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, userID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id, userID string) error {
	if p, ok := r.byID[id]; ok && p.UserID == userID {
		delete(r.byID, id)
	}
	return nil
}

type testStore struct {
	key  string
	body string
}

func (s *testStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	b, _ := io.ReadAll(body)
	s.key, s.body = key, string(b)
	return "https://cdn.test/" + key, nil
}

func newTestService(store *testStore) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	if store != nil {
		svc.photos = store
	}
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc, repo
}

func ptr[T any](v T) *T { return &v }

func TestCreateThenGet_Rex(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", CreateInput{Name: "Rex", AgeMonths: ptr(24), WeightKg: ptr(12.5)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, 24, *got.AgeMonths)
	assert.Equal(t, 12.5, *got.WeightKg)
	assert.Nil(t, got.Breed)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "   ", AgeMonths: ptr(-1)})
	require.Error(t, err)
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, ae.Kind)
	assert.Len(t, ae.Fields, 2)
}

func TestOwnershipMismatchEqualsNotFound(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", CreateInput{Name: "Milo"})
	require.NoError(t, err)

	_, errForeign := svc.Get(ctx, "intruder", p.ID)
	_, errMissing := svc.Get(ctx, "intruder", "00000000-0000-0000-0000-000000000000")

	require.Error(t, errForeign)
	require.Error(t, errMissing)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
	assert.True(t, apperrors.Is(errForeign, apperrors.KindNotFound))

	_, err = svc.Update(ctx, "intruder", p.ID, UpdateInput{Name: patch.Value("Hacked")})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdate_PatchSemantics(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "user-1", CreateInput{Name: "Luna", Breed: ptr("beagle"), WeightKg: ptr(9.0)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", p.ID, UpdateInput{
		Breed:     patch.Null[string](),
		AgeMonths: patch.Value(36),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luna", updated.Name)
	assert.Nil(t, updated.Breed)
	assert.Equal(t, 36, *updated.AgeMonths)
	assert.Equal(t, 9.0, *updated.WeightKg)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

	_, err = svc.Update(ctx, "user-1", p.ID, UpdateInput{Name: patch.Null[string]()})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestDelete_IsOwnerFilteredAndIdempotent(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner", CreateInput{Name: "Toby"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "intruder", p.ID))
	assert.Contains(t, repo.byID, p.ID)

	require.NoError(t, svc.Delete(ctx, "owner", p.ID))
	require.NoError(t, svc.Delete(ctx, "owner", p.ID))
	assert.NotContains(t, repo.byID, p.ID)
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestService(nil)
	_, err := svc.UploadPhoto(ctx, "u", "id", "a.png", "image/png", strings.NewReader("x"), 1)
	assert.True(t, apperrors.Is(err, apperrors.KindServiceUnavailable))

	store := &testStore{}
	svc, _ = newTestService(store)
	p, err := svc.Create(ctx, "user-1", CreateInput{Name: "Rex"})
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, "user-1", p.ID, "doc.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	updated, err := svc.UploadPhoto(ctx, "user-1", p.ID, "Rex.JPG", "image/jpeg", strings.NewReader("img"), 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(store.key, "pets/"+p.ID+"/"))
	assert.True(t, strings.HasSuffix(store.key, ".jpg"))
	assert.Equal(t, "img", store.body)
	require.NotNil(t, updated.PhotoURL)
	assert.Equal(t, "https://cdn.test/"+store.key, *updated.PhotoURL)
}
