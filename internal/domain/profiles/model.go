package profiles

import "time"

// Profile comparte id con el usuario del proveedor de identidad.
type Profile struct {
	ID        string
	Email     string
	Name      *string
	Phone     *string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
