package memory

import (
	"context"
	"sort"

	"woofy-api/internal/domain/medicalrecords"
)

type recordRepo struct{ s *Store }

func (r *recordRepo) ListByPet(ctx context.Context, petID string, typ *medicalrecords.Type) ([]medicalrecords.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medicalrecords.Record, 0)
	for _, rec := range r.s.records {
		if rec.PetID != petID || (typ != nil && rec.Type != *typ) {
			continue
		}
		rec.Attachments = cloneStrings(rec.Attachments)
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *recordRepo) Get(ctx context.Context, id string) (medicalrecords.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.records[id]
	if !ok {
		return medicalrecords.Detail{}, medicalrecords.ErrNotFound
	}
	p, ok := r.s.pets[rec.PetID]
	if !ok {
		return medicalrecords.Detail{}, medicalrecords.ErrNotFound
	}
	rec.Attachments = cloneStrings(rec.Attachments)
	return medicalrecords.Detail{
		Record: rec,
		Pet:    medicalrecords.PetSummary{ID: p.ID, Name: p.Name, Breed: p.Breed, UserID: p.UserID},
	}, nil
}

func (r *recordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec.Attachments = cloneStrings(rec.Attachments)
	r.s.records[rec.ID] = rec
	return nil
}

func (r *recordRepo) Update(ctx context.Context, rec medicalrecords.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[rec.ID]; !ok {
		return medicalrecords.ErrNotFound
	}
	rec.Attachments = cloneStrings(rec.Attachments)
	r.s.records[rec.ID] = rec
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.records, id)
	return nil
}
