package memory

import (
	"context"
	"sort"

	"woofy-api/internal/domain/symptomchecks"
)

type checkRepo struct{ s *Store }

func (r *checkRepo) ListByPet(ctx context.Context, petID string) ([]symptomchecks.Check, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]symptomchecks.Check, 0)
	for _, c := range r.s.checks {
		if c.PetID == petID {
			c.NextActions = cloneStrings(c.NextActions)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *checkRepo) Get(ctx context.Context, id string) (symptomchecks.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.checks[id]
	if !ok {
		return symptomchecks.Detail{}, symptomchecks.ErrNotFound
	}
	p, ok := r.s.pets[c.PetID]
	if !ok {
		return symptomchecks.Detail{}, symptomchecks.ErrNotFound
	}
	c.NextActions = cloneStrings(c.NextActions)
	return symptomchecks.Detail{
		Check: c,
		Pet:   symptomchecks.PetSummary{ID: p.ID, Name: p.Name, Breed: p.Breed, UserID: p.UserID},
	}, nil
}

func (r *checkRepo) Create(ctx context.Context, c symptomchecks.Check) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.NextActions = cloneStrings(c.NextActions)
	r.s.checks[c.ID] = c
	return nil
}
