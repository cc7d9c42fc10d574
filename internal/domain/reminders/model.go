package reminders

import "time"

type Type string

const (
	TypeVaccine  Type = "vaccine"
	TypeDeworm   Type = "deworm"
	TypeAntiflea Type = "antiflea"
	TypeCheckup  Type = "checkup"
	TypeGrooming Type = "grooming"
	TypeOther    Type = "other"
)

const typeList = "vaccine deworm antiflea checkup grooming other"

func (t Type) Valid() bool {
	switch t {
	case TypeVaccine, TypeDeworm, TypeAntiflea, TypeCheckup, TypeGrooming, TypeOther:
		return true
	}
	return false
}

type Reminder struct {
	ID          string
	PetID       string
	Title       string
	Description *string
	DueAt       time.Time
	Type        Type
	IsSent      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PetSummary struct {
	ID       string
	Name     string
	Breed    *string
	PhotoURL *string
	UserID   string
}

// WithPet es el recordatorio con la mascota dueña proyectada.
type WithPet struct {
	Reminder
	Pet PetSummary
}
