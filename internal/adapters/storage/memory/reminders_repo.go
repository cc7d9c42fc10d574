package memory

import (
	"context"
	"sort"
	"time"

	"woofy-api/internal/domain/reminders"
)

type reminderRepo struct{ s *Store }

func (r *reminderRepo) ListForUser(ctx context.Context, userID string, f reminders.ListFilter) ([]reminders.WithPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.WithPet, 0)
	for _, rem := range r.s.reminders {
		wp, ok := r.withPetLocked(rem)
		if !ok || wp.Pet.UserID != userID {
			continue
		}
		if f.Type != nil && rem.Type != *f.Type {
			continue
		}
		if f.From != nil && rem.DueAt.Before(*f.From) {
			continue
		}
		out = append(out, wp)
	}
	sortByDue(out, func(i int) time.Time { return out[i].DueAt })
	return out, nil
}

func (r *reminderRepo) ListByPet(ctx context.Context, petID string) ([]reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.s.reminders {
		if rem.PetID == petID {
			out = append(out, rem)
		}
	}
	sortByDue(out, func(i int) time.Time { return out[i].DueAt })
	return out, nil
}

func (r *reminderRepo) Get(ctx context.Context, id string) (reminders.WithPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.WithPet{}, reminders.ErrNotFound
	}
	wp, ok := r.withPetLocked(rem)
	if !ok {
		return reminders.WithPet{}, reminders.ErrNotFound
	}
	return wp, nil
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reminders[rem.ID]; !ok {
		return reminders.ErrNotFound
	}
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.reminders, id)
	return nil
}

func (r *reminderRepo) ListDue(ctx context.Context, until time.Time, after *reminders.DueCursor, limit int) ([]reminders.WithPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.WithPet, 0)
	for _, rem := range r.s.reminders {
		if rem.IsSent || rem.DueAt.After(until) {
			continue
		}
		if after != nil && !after.After(rem) {
			continue
		}
		if wp, ok := r.withPetLocked(rem); ok {
			out = append(out, wp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reminderRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rem, ok := r.s.reminders[id]
	if !ok {
		return reminders.ErrNotFound
	}
	rem.IsSent = true
	rem.UpdatedAt = at
	r.s.reminders[id] = rem
	return nil
}

func (r *reminderRepo) withPetLocked(rem reminders.Reminder) (reminders.WithPet, bool) {
	p, ok := r.s.pets[rem.PetID]
	if !ok {
		return reminders.WithPet{}, false
	}
	return reminders.WithPet{
		Reminder: rem,
		Pet: reminders.PetSummary{
			ID:       p.ID,
			Name:     p.Name,
			Breed:    p.Breed,
			PhotoURL: p.PhotoURL,
			UserID:   p.UserID,
		},
	}, true
}

func sortByDue[T any](items []T, due func(i int) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return due(i).Before(due(j)) })
}
