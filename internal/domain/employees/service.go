package employees

import (
	"context"
	"strings"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/clock"
	"vet-clinic/internal/platform/validate"
	"vet-clinic/internal/ports/storage"
)

type Service struct {
	repo  Repository
	appts AppointmentCounter
	tx    storage.TxRunner
	now   func() time.Time
}

func NewService(repo Repository, appts AppointmentCounter, tx storage.TxRunner) *Service {
	return &Service{repo: repo, appts: appts, tx: tx, now: time.Now}
}

type CreateInput struct {
	Name  string
	Role  string
	Phone string
	Email string
}

type UpdateInput struct {
	Name  *string
	Role  *string
	Phone *string
	Email *string
}

func (in CreateInput) validate() error {
	var v validate.Collector
	v.Required("nome", in.Name)
	v.Required("cargo", in.Role)
	v.Required("telefone", in.Phone)
	if v.Required("email", in.Email) {
		v.Email("email", in.Email)
	}
	return v.Err()
}

func (in UpdateInput) validate() error {
	var v validate.Collector
	if in.Name != nil {
		v.Check(strings.TrimSpace(*in.Name) != "", "nome", "must not be empty")
	}
	if in.Role != nil {
		v.Check(strings.TrimSpace(*in.Role) != "", "cargo", "must not be empty")
	}
	if in.Phone != nil {
		v.Check(strings.TrimSpace(*in.Phone) != "", "telefone", "must not be empty")
	}
	if in.Email != nil {
		v.Email("email", *in.Email)
	}
	return v.Err()
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Employee, error) {
	if err := in.validate(); err != nil {
		return Employee{}, err
	}
	now := clock.Now(s.now)
	return s.repo.Create(ctx, Employee{
		Name:      strings.TrimSpace(in.Name),
		Role:      strings.TrimSpace(in.Role),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Employee, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Employee, error) {
	if err := in.validate(); err != nil {
		return Employee{}, err
	}

	var out Employee
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			e.Name = strings.TrimSpace(*in.Name)
		}
		if in.Role != nil {
			e.Role = strings.TrimSpace(*in.Role)
		}
		if in.Phone != nil {
			e.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Email != nil {
			e.Email = strings.TrimSpace(*in.Email)
		}
		e.UpdatedAt = clock.Touch(e.UpdatedAt, s.now)

		out, err = s.repo.Update(ctx, e)
		return err
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.appts.CountByEmployee(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("employee has registered appointments", nil,
				apperr.FieldError{Field: "id_funcionario", Message: "remove the employee's appointments first"})
		}
		return s.repo.Delete(ctx, id)
	})
}
