package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"woofy-api/internal/domain/clinics"

	"github.com/google/uuid"
)

type clinicRepo struct{ s *Store }

func (r *clinicRepo) List(ctx context.Context, f clinics.ListFilter) ([]clinics.Clinic, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]clinics.Clinic, 0, len(r.s.clinics))
	for _, c := range r.s.clinics {
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Rating == all[j].Rating {
			return all[i].Name < all[j].Name
		}
		return all[i].Rating > all[j].Rating
	})

	total := len(all)
	if f.Limit <= 0 {
		return all, total, nil
	}
	if f.Offset >= total {
		return []clinics.Clinic{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (r *clinicRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clinics[id]
	if !ok {
		return clinics.Clinic{}, clinics.ErrNotFound
	}
	return c, nil
}

func (r *clinicRepo) ListServices(ctx context.Context, clinicID string) ([]clinics.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]clinics.Service, 0)
	for _, sv := range r.s.clinicServices {
		if sv.ClinicID == clinicID && sv.IsActive {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category == out[j].Category {
			return out[i].Name < out[j].Name
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *clinicRepo) ListHours(ctx context.Context, clinicID string) ([]clinics.Hours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]clinics.Hours, 0)
	for _, h := range r.s.clinicHours {
		if h.ClinicID == clinicID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

// PutClinic carga (o reemplaza) una clínica con sus servicios y horarios.
// El catálogo de clínicas no tiene endpoints de escritura.
func (s *Store) PutClinic(c clinics.Clinic, services []clinics.Service, hours []clinics.Hours) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clinics[c.ID] = c
	for _, sv := range services {
		sv.ClinicID = c.ID
		s.clinicServices[sv.ID] = sv
	}
	for _, h := range hours {
		h.ClinicID = c.ID
		s.clinicHours[h.ID] = h
	}
}

// Demo clinic ids, estables para poder reservar citas en dev.
const (
	DemoClinicID         = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c01"
	DemoConsultationID   = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c11"
	DemoVaccinationID    = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c12"
	demoSecondClinicID   = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c02"
	demoGroomingID       = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c21"
	demoInactiveClinicID = "8f0c6b1e-2d4a-4c2e-9b1a-5a6f7e8d9c03"
)

// SeedDemo carga un catálogo chico de clínicas para dev.
func (s *Store) SeedDemo(now time.Time) {
	lat, lng := -34.6037, -58.3816

	s.PutClinic(clinics.Clinic{
		ID: DemoClinicID, Name: "Clínica Veterinaria San Roque", Address: "Av. Corrientes 1234",
		Phone: "+541143210000", Email: "turnos@sanroque.vet", Latitude: &lat, Longitude: &lng,
		Rating: 4.8, IsActive: true, CreatedAt: now,
	}, []clinics.Service{
		{ID: DemoConsultationID, Name: "Consulta general", Category: "consulta", Description: "Control clínico", BasePrice: 15000, DurationMinutes: 30, IsActive: true},
		{ID: DemoVaccinationID, Name: "Vacunación", Category: "prevencion", Description: "Aplicación de vacunas", BasePrice: 9000, DurationMinutes: 15, IsActive: true},
	}, weekHours(DemoClinicID, "09:00", "19:00"))

	s.PutClinic(clinics.Clinic{
		ID: demoSecondClinicID, Name: "Patitas Felices", Address: "Calle 50 N° 820",
		Phone: "+542214000000", Email: "hola@patitas.vet", Rating: 4.3, IsActive: true, CreatedAt: now,
	}, []clinics.Service{
		{ID: demoGroomingID, Name: "Baño y corte", Category: "estetica", BasePrice: 12000, DurationMinutes: 60, IsActive: true},
	}, weekHours(demoSecondClinicID, "10:00", "18:00"))

	s.PutClinic(clinics.Clinic{
		ID: demoInactiveClinicID, Name: "Veterinaria del Puerto", Address: "Av. Costanera 55",
		Rating: 3.9, IsActive: false, CreatedAt: now,
	}, nil, nil)
}

func weekHours(clinicID, opens, closes string) []clinics.Hours {
	out := make([]clinics.Hours, 0, 7)
	for d := 0; d < 7; d++ {
		h := clinics.Hours{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(clinicID+strconv.Itoa(d))).String(),
			DayOfWeek: d,
			OpensAt:   opens,
			ClosesAt:  closes,
		}
		if d == 0 {
			h.IsClosed = true
		}
		out = append(out, h)
	}
	return out
}
