package payments

import "context"

type Repository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id int64) (Payment, error)
	GetByAppointment(ctx context.Context, appointmentID int64) (Payment, error)
	Update(ctx context.Context, p Payment) (Payment, error)
	Delete(ctx context.Context, id int64) error
	CountByAppointment(ctx context.Context, appointmentID int64) (int, error)
}

// AppointmentChecker lo implementa appointments.Service.
type AppointmentChecker interface {
	Exists(ctx context.Context, id int64) error
}
