package memory

import (
	"context"
	"testing"
	"time"

	"woofy-api/internal/domain/aichat"
	"woofy-api/internal/domain/appointments"
	"woofy-api/internal/domain/clinics"
	"woofy-api/internal/domain/medicalrecords"
	"woofy-api/internal/domain/pets"
	"woofy-api/internal/domain/reminders"
	"woofy-api/internal/domain/symptomchecks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func seedPet(t *testing.T, s *Store, id, owner string) {
	t.Helper()
	require.NoError(t, s.Pets().Create(context.Background(), pets.Pet{ID: id, UserID: owner, Name: "Rex", CreatedAt: t0, UpdatedAt: t0}))
}

func TestDeletePet_CascadesToChildren(t *testing.T) {
	s := New()
	s.SeedDemo(t0)
	ctx := context.Background()
	seedPet(t, s, "pet-1", "user-1")

	require.NoError(t, s.MedicalRecords().Create(ctx, medicalrecords.Record{ID: "rec-1", PetID: "pet-1", Type: medicalrecords.TypeVaccine, Date: t0}))
	require.NoError(t, s.Reminders().Create(ctx, reminders.Reminder{ID: "rem-1", PetID: "pet-1", Title: "Vacuna", DueAt: t0}))
	require.NoError(t, s.SymptomChecks().Create(ctx, symptomchecks.Check{ID: "chk-1", PetID: "pet-1", TriageLevel: symptomchecks.TriageLow, CreatedAt: t0}))
	require.NoError(t, s.Appointments().Create(ctx, appointments.Appointment{ID: "apt-1", UserID: "user-1", PetID: "pet-1", ClinicID: DemoClinicID, StartsAt: t0, EndsAt: t0.Add(time.Hour)}))

	require.NoError(t, s.Pets().Delete(ctx, "pet-1", "intruder"))
	_, err := s.Pets().GetByID(ctx, "pet-1")
	require.NoError(t, err)

	require.NoError(t, s.Pets().Delete(ctx, "pet-1", "user-1"))

	_, err = s.Pets().GetByID(ctx, "pet-1")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	_, err = s.MedicalRecords().Get(ctx, "rec-1")
	assert.ErrorIs(t, err, medicalrecords.ErrNotFound)
	_, err = s.Reminders().Get(ctx, "rem-1")
	assert.ErrorIs(t, err, reminders.ErrNotFound)
	_, err = s.SymptomChecks().Get(ctx, "chk-1")
	assert.ErrorIs(t, err, symptomchecks.ErrNotFound)
	_, err = s.Appointments().Get(ctx, "apt-1", "user-1")
	assert.ErrorIs(t, err, appointments.ErrNotFound)
}

func TestAppointments_Projection(t *testing.T) {
	s := New()
	s.SeedDemo(t0)
	ctx := context.Background()
	seedPet(t, s, "pet-1", "user-1")

	require.NoError(t, s.Appointments().Create(ctx, appointments.Appointment{
		ID: "apt-1", UserID: "user-1", PetID: "pet-1", ClinicID: DemoClinicID, ServiceID: DemoVaccinationID,
		StartsAt: t0, EndsAt: t0.Add(15 * time.Minute), Status: appointments.StatusPending,
	}))

	d, err := s.Appointments().Get(ctx, "apt-1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, d.Pet)
	require.NotNil(t, d.Clinic)
	require.NotNil(t, d.Service)
	assert.Equal(t, "Rex", d.Pet.Name)
	assert.Equal(t, "Clínica Veterinaria San Roque", d.Clinic.Name)
	assert.Equal(t, "Vacunación", d.Service.Name)

	_, err = s.Appointments().Get(ctx, "apt-1", "user-2")
	assert.ErrorIs(t, err, appointments.ErrNotFound)
}

func TestClinics_FilterOrderAndPage(t *testing.T) {
	s := New()
	s.SeedDemo(t0)
	ctx := context.Background()
	active := true

	items, total, err := s.Clinics().List(ctx, clinics.ListFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, DemoClinicID, items[0].ID)

	all, total, err := s.Clinics().List(ctx, clinics.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	page, total, err := s.Clinics().List(ctx, clinics.ListFilter{IsActive: &active, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Patitas Felices", page[0].Name)

	hours, err := s.Clinics().ListHours(ctx, DemoClinicID)
	require.NoError(t, err)
	require.Len(t, hours, 7)
	assert.Equal(t, 0, hours[0].DayOfWeek)
	assert.True(t, hours[0].IsClosed)

	services, err := s.Clinics().ListServices(ctx, DemoClinicID)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "consulta", services[0].Category)
}

func TestChat_MessagesInInsertionOrderAndCascade(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Chat()

	require.NoError(t, repo.CreateConversation(ctx, aichat.Conversation{ID: "c-1", UserID: "user-1", Title: aichat.DefaultTitle, CreatedAt: t0, UpdatedAt: t0}))
	require.NoError(t, repo.AddMessage(ctx, aichat.Message{ID: "m-1", ConversationID: "c-1", Role: aichat.RoleUser, Content: "hola", CreatedAt: t0}))
	require.NoError(t, repo.AddMessage(ctx, aichat.Message{ID: "m-2", ConversationID: "c-1", Role: aichat.RoleAssistant, Content: "¡hola!", CreatedAt: t0}))

	msgs, err := repo.ListMessages(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m-1", msgs[0].ID)
	assert.Equal(t, "m-2", msgs[1].ID)

	assert.ErrorIs(t, repo.AddMessage(ctx, aichat.Message{ID: "m-x", ConversationID: "missing"}), aichat.ErrNotFound)

	require.NoError(t, repo.DeleteConversation(ctx, "c-1", "user-1"))
	_, err = repo.GetConversation(ctx, "c-1", "user-1")
	assert.ErrorIs(t, err, aichat.ErrNotFound)
	msgs, err = repo.ListMessages(ctx, "c-1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestReminders_ListDueAndMarkSent(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedPet(t, s, "pet-1", "user-1")
	repo := s.Reminders()

	require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "r-late", PetID: "pet-1", Title: "a", DueAt: t0.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "r-future", PetID: "pet-1", Title: "b", DueAt: t0.Add(48 * time.Hour)}))

	due, err := repo.ListDue(ctx, t0, nil, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "user-1", due[0].Pet.UserID)

	require.NoError(t, repo.MarkSent(ctx, "r-late", t0))
	due, err = repo.ListDue(ctx, t0, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestReminders_ListDueKeyset(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedPet(t, s, "pet-1", "user-1")
	repo := s.Reminders()

	require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "r-2", PetID: "pet-1", Title: "b", DueAt: t0.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "r-1", PetID: "pet-1", Title: "a", DueAt: t0.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, reminders.Reminder{ID: "r-0", PetID: "pet-1", Title: "c", DueAt: t0.Add(-2 * time.Hour)}))

	var ids []string
	var after *reminders.DueCursor
	for {
		page, err := repo.ListDue(ctx, t0, after, 1)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		ids = append(ids, page[0].ID)
		after = &reminders.DueCursor{DueAt: page[0].DueAt, ID: page[0].ID}
	}
	assert.Equal(t, []string{"r-0", "r-1", "r-2"}, ids)
}
