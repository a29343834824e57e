package appointments

import (
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/tutors"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusScheduled   Status = "Agendada"
	StatusCompleted   Status = "Realizada"
	StatusCancelled   Status = "Cancelada"
	StatusRescheduled Status = "Remarcada"
	StatusNoShow      Status = "Não Compareceu"
	StatusInProgress  Status = "Em Andamento"
)

var Statuses = []string{
	string(StatusScheduled),
	string(StatusCompleted),
	string(StatusCancelled),
	string(StatusRescheduled),
	string(StatusNoShow),
	string(StatusInProgress),
}

// Appointment une un animal con el funcionario que lo atiende.
type Appointment struct {
	ID          int64
	AnimalID    int64
	EmployeeID  int64
	ScheduledAt time.Time
	Diagnosis   *string // nullable
	Status      Status
	Price       decimal.Decimal // DECIMAL(10,2)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detailed es la consulta con su animal (y el tutor del animal) y su funcionario.
type Detailed struct {
	Appointment
	Animal   animals.Animal
	Tutor    tutors.Tutor
	Employee employees.Employee
}
