package appointments

import "time"

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
	StatusDone        Status = "done"
)

// Cualquier transición entre estados es válida.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRescheduled, StatusCancelled, StatusDone:
		return true
	}
	return false
}

type Appointment struct {
	ID        string
	UserID    string
	PetID     string
	ClinicID  string
	ServiceID string
	StartsAt  time.Time
	EndsAt    time.Time
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PetSummary struct {
	ID       string
	Name     string
	Breed    *string
	PhotoURL *string
}

type ClinicSummary struct {
	ID      string
	Name    string
	Address string
	Phone   string
}

type ServiceSummary struct {
	ID              string
	Name            string
	Category        string
	BasePrice       float64
	DurationMinutes int
}

// Detail es la cita con sus relaciones proyectadas (nil si ya no existen).
type Detail struct {
	Appointment
	Pet     *PetSummary
	Clinic  *ClinicSummary
	Service *ServiceSummary
}
