package memory

import (
	"context"
	"sort"

	"woofy-api/internal/domain/appointments"
)

type appointmentRepo struct{ s *Store }

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.appointments[a.ID]
	if !ok || cur.UserID != a.UserID {
		return appointments.ErrNotFound
	}
	r.s.appointments[a.ID] = a
	return nil
}

func (r *appointmentRepo) Get(ctx context.Context, id, userID string) (appointments.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok || a.UserID != userID {
		return appointments.Detail{}, appointments.ErrNotFound
	}
	return r.detailLocked(a), nil
}

func (r *appointmentRepo) List(ctx context.Context, userID string, f appointments.ListFilter) ([]appointments.Detail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Detail, 0)
	for _, a := range r.s.appointments {
		if a.UserID != userID {
			continue
		}
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.From != nil && a.StartsAt.Before(*f.From) {
			continue
		}
		out = append(out, r.detailLocked(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a, ok := r.s.appointments[id]; ok && a.UserID == userID {
		delete(r.s.appointments, id)
	}
	return nil
}

func (r *appointmentRepo) detailLocked(a appointments.Appointment) appointments.Detail {
	d := appointments.Detail{Appointment: a}
	if p, ok := r.s.pets[a.PetID]; ok {
		d.Pet = &appointments.PetSummary{ID: p.ID, Name: p.Name, Breed: p.Breed, PhotoURL: p.PhotoURL}
	}
	if c, ok := r.s.clinics[a.ClinicID]; ok {
		d.Clinic = &appointments.ClinicSummary{ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone}
	}
	if sv, ok := r.s.clinicServices[a.ServiceID]; ok {
		d.Service = &appointments.ServiceSummary{
			ID:              sv.ID,
			Name:            sv.Name,
			Category:        sv.Category,
			BasePrice:       sv.BasePrice,
			DurationMinutes: sv.DurationMinutes,
		}
	}
	return d
}
