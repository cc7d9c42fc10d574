package symptomchecks

import "time"

type TriageLevel string

const (
	TriageLow    TriageLevel = "low"
	TriageMedium TriageLevel = "medium"
	TriageHigh   TriageLevel = "high"
)

func (l TriageLevel) Valid() bool {
	switch l {
	case TriageLow, TriageMedium, TriageHigh:
		return true
	}
	return false
}

// Check es la fila persistida. possible_causes no forma parte de ella.
type Check struct {
	ID          string
	PetID       string
	Symptoms    string
	TriageLevel TriageLevel
	Advice      string
	NextActions []string
	CreatedAt   time.Time
}

type PetSummary struct {
	ID     string
	Name   string
	Breed  *string
	UserID string
}

type Detail struct {
	Check
	Pet PetSummary
}

// Analysis es el resultado normalizado del modelo.
type Analysis struct {
	TriageLevel    TriageLevel
	PossibleCauses []string
	Advice         string
	NextActions    []string
}

// Result es lo que devuelve la creación: la fila más las causas posibles.
type Result struct {
	Check
	PossibleCauses []string
}
