package pets

import "time"

// Pet es el perfil de una mascota. Los campos puntero son opcionales (NULL).
type Pet struct {
	ID     string
	UserID string

	Name      string
	Breed     *string
	AgeMonths *int
	WeightKg  *float64
	PhotoURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
