package medicalrecords

import "time"

type Type string

const (
	TypeVaccine  Type = "vaccine"
	TypeDeworm   Type = "deworm"
	TypeAntiflea Type = "antiflea"
	TypeSurgery  Type = "surgery"
	TypeAllergy  Type = "allergy"
	TypeWeight   Type = "weight"
	TypeOther    Type = "other"
)

const typeList = "vaccine deworm antiflea surgery allergy weight other"

func (t Type) Valid() bool {
	switch t {
	case TypeVaccine, TypeDeworm, TypeAntiflea, TypeSurgery, TypeAllergy, TypeWeight, TypeOther:
		return true
	}
	return false
}

type Record struct {
	ID          string
	PetID       string
	Type        Type
	Date        time.Time
	Notes       *string
	Attachments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PetSummary incluye user_id: es lo que decide la pertenencia del registro.
type PetSummary struct {
	ID     string
	Name   string
	Breed  *string
	UserID string
}

type Detail struct {
	Record
	Pet PetSummary
}
