package memory

import (
	"sync"

	"woofy-api/internal/domain/aichat"
	"woofy-api/internal/domain/appointments"
	"woofy-api/internal/domain/clinics"
	"woofy-api/internal/domain/medicalrecords"
	"woofy-api/internal/domain/pets"
	"woofy-api/internal/domain/profiles"
	"woofy-api/internal/domain/reminders"
	"woofy-api/internal/domain/symptomchecks"
)

// Store guarda todas las tablas en memoria bajo un único lock, así los repos
// pueden proyectar relaciones y emular los borrados en cascada de la base.
// Pensado para dev y tests.
type Store struct {
	mu sync.RWMutex

	profiles map[string]profiles.Profile
	pets     map[string]pets.Pet

	clinics        map[string]clinics.Clinic
	clinicServices map[string]clinics.Service
	clinicHours    map[string]clinics.Hours

	appointments map[string]appointments.Appointment
	records      map[string]medicalrecords.Record
	reminders    map[string]reminders.Reminder
	checks       map[string]symptomchecks.Check

	conversations map[string]aichat.Conversation
	// messages conserva el orden de inserción.
	messages []aichat.Message
}

func New() *Store {
	return &Store{
		profiles:       make(map[string]profiles.Profile),
		pets:           make(map[string]pets.Pet),
		clinics:        make(map[string]clinics.Clinic),
		clinicServices: make(map[string]clinics.Service),
		clinicHours:    make(map[string]clinics.Hours),
		appointments:   make(map[string]appointments.Appointment),
		records:        make(map[string]medicalrecords.Record),
		reminders:      make(map[string]reminders.Reminder),
		checks:         make(map[string]symptomchecks.Check),
		conversations:  make(map[string]aichat.Conversation),
	}
}

func (s *Store) Profiles() profiles.Repository             { return &profileRepo{s} }
func (s *Store) Pets() pets.Repository                     { return &petRepo{s} }
func (s *Store) Clinics() clinics.Repository               { return &clinicRepo{s} }
func (s *Store) Appointments() appointments.Repository     { return &appointmentRepo{s} }
func (s *Store) MedicalRecords() medicalrecords.Repository { return &recordRepo{s} }
func (s *Store) Reminders() reminders.Repository           { return &reminderRepo{s} }
func (s *Store) SymptomChecks() symptomchecks.Repository   { return &checkRepo{s} }
func (s *Store) Chat() aichat.Repository                   { return &chatRepo{s} }

// deletePetLocked borra la mascota y todo lo que cuelga de ella.
func (s *Store) deletePetLocked(id string) {
	delete(s.pets, id)
	for k, v := range s.records {
		if v.PetID == id {
			delete(s.records, k)
		}
	}
	for k, v := range s.reminders {
		if v.PetID == id {
			delete(s.reminders, k)
		}
	}
	for k, v := range s.checks {
		if v.PetID == id {
			delete(s.checks, k)
		}
	}
	for k, v := range s.appointments {
		if v.PetID == id {
			delete(s.appointments, k)
		}
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
