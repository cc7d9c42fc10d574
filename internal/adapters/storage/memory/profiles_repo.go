package memory

import (
	"context"
	"errors"

	"woofy-api/internal/domain/profiles"
)

type profileRepo struct{ s *Store }

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[p.ID]; exists {
		return errors.New("profile already exists")
	}
	r.s.profiles[p.ID] = p
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[p.ID]; !exists {
		return profiles.ErrNotFound
	}
	r.s.profiles[p.ID] = p
	return nil
}
