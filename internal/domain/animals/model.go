package animals

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status del paciente. Default Ativo.
type Status string

const (
	StatusActive   Status = "Ativo"
	StatusInactive Status = "Inativo"
	StatusDeceased Status = "Falecido"
)

var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusDeceased)}

// Animal es un paciente de la clínica, siempre asociado a un tutor.
type Animal struct {
	ID        int64
	Name      string
	Species   string
	Breed     string
	Weight    decimal.Decimal // DECIMAL(6,2)
	Sex       string          // un carácter (M/F)
	BirthDate time.Time

	MedicalNotes *string // nullable
	Status       Status
	TutorID      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
