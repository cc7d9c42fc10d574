package profiles

import (
	"context"
	"testing"

	"woofy-api/internal/domain/notifications"
	"woofy-api/internal/platform/apperrors"
	"woofy-api/internal/platform/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Profile
}

func (r *testRepo) GetByID(_ context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Create(_ context.Context, p Profile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Profile) error {
	r.byID[p.ID] = p
	return nil
}

type testWelcome struct {
	to, name string
	calls    int
}

func (w *testWelcome) SendWelcomeEmail(_ context.Context, to, name string) notifications.Result {
	w.calls++
	w.to, w.name = to, name
	return notifications.Result{Success: true}
}

func TestGet_Missing(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Profile{}}, nil)
	_, err := svc.Get(context.Background(), "u1")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdate_CreatesOnceAndWelcomes(t *testing.T) {
	repo := &testRepo{byID: map[string]Profile{}}
	welcome := &testWelcome{}
	svc := NewService(repo, welcome)
	ctx := context.Background()

	p, err := svc.Update(ctx, "u1", "ana@woofy.app", UpdateInput{Name: patch.Value("  Ana  ")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", *p.Name)
	assert.Equal(t, "ana@woofy.app", p.Email)
	assert.Equal(t, 1, welcome.calls)
	assert.Equal(t, "Ana", welcome.name)

	p, err = svc.Update(ctx, "u1", "ana@woofy.app", UpdateInput{Phone: patch.Value("+34 600 000 000")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", *p.Name)
	assert.Equal(t, "+34 600 000 000", *p.Phone)
	assert.Equal(t, 1, welcome.calls)

	p, err = svc.Update(ctx, "u1", "", UpdateInput{Phone: patch.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, p.Phone)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(&testRepo{byID: map[string]Profile{}}, nil)
	_, err := svc.Update(context.Background(), "u1", "", UpdateInput{
		Name:      patch.Value("A"),
		AvatarURL: patch.Value("nope"),
	})
	ae, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, ae.Kind)
	assert.Len(t, ae.Fields, 2)
}
