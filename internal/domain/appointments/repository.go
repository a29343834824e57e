package appointments

import (
	"context"

	"vet-clinic/internal/domain/animals"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	GetByID(ctx context.Context, id int64) (Appointment, error)
	Update(ctx context.Context, a Appointment) (Appointment, error)
	Delete(ctx context.Context, id int64) error

	// Lecturas con join; ordenadas por data_hora DESC.
	ListDetailed(ctx context.Context) ([]Detailed, error)
	GetDetailed(ctx context.Context, id int64) (Detailed, error)

	ListByAnimal(ctx context.Context, animalID int64) ([]Appointment, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Appointment, error)
	CountByAnimal(ctx context.Context, animalID int64) (int, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
}

// AnimalFinder lo implementa animals.Service.
type AnimalFinder interface {
	Exists(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (animals.Animal, error)
}

// EmployeeChecker lo implementa employees.Service.
type EmployeeChecker interface {
	Exists(ctx context.Context, id int64) error
}

// PaymentCounter lo implementa el repo de pagamentos.
type PaymentCounter interface {
	CountByAppointment(ctx context.Context, appointmentID int64) (int, error)
}
