package employees

import "context"

type Repository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByName(ctx context.Context, name string) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}

type AppointmentCounter interface {
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
}
