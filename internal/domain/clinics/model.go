package clinics

import "time"

type Clinic struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	Latitude  *float64
	Longitude *float64
	Rating    float64
	IsActive  bool
	CreatedAt time.Time
}

// Service es un servicio ofrecido por una clínica (consulta, vacunación...).
type Service struct {
	ID              string
	ClinicID        string
	Name            string
	Category        string
	Description     string
	BasePrice       float64
	DurationMinutes int
	IsActive        bool
}

// Hours es la franja de un día de la semana (0=domingo).
type Hours struct {
	ID        string
	ClinicID  string
	DayOfWeek int
	OpensAt   string
	ClosesAt  string
	IsClosed  bool
}
