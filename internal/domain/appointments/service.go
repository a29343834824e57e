package appointments

import (
	"context"
	"strings"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/clock"
	"vet-clinic/internal/platform/validate"
	"vet-clinic/internal/ports/storage"

	"github.com/shopspring/decimal"
)

const pricePrecision = 10

type Service struct {
	repo      Repository
	animals   AnimalFinder
	employees EmployeeChecker
	payments  PaymentCounter
	tx        storage.TxRunner
	now       func() time.Time
}

func NewService(repo Repository, animals AnimalFinder, employees EmployeeChecker, payments PaymentCounter, tx storage.TxRunner) *Service {
	return &Service{
		repo:      repo,
		animals:   animals,
		employees: employees,
		payments:  payments,
		tx:        tx,
		now:       time.Now,
	}
}

type CreateInput struct {
	AnimalID    int64
	EmployeeID  int64
	ScheduledAt *time.Time
	Diagnosis   *string
	Status      string // vacío = Agendada
	Price       *decimal.Decimal
}

type UpdateInput struct {
	AnimalID       *int64
	EmployeeID     *int64
	ScheduledAt    *time.Time
	Diagnosis      *string
	ClearDiagnosis bool
	Status         *string
	Price          *decimal.Decimal
}

func (in CreateInput) validate() error {
	var v validate.Collector
	v.Present("id_animal", in.AnimalID != 0)
	v.Present("id_funcionario", in.EmployeeID != 0)
	v.Present("data_hora", in.ScheduledAt != nil)
	if v.Present("preco", in.Price != nil) {
		checkPrice(&v, *in.Price)
	}
	v.Check(in.AnimalID >= 0, "id_animal", "must be a positive integer")
	v.Check(in.EmployeeID >= 0, "id_funcionario", "must be a positive integer")
	if in.Status != "" {
		v.OneOf("status_consulta", in.Status, Statuses)
	}
	return v.Err()
}

func (in UpdateInput) validate() error {
	var v validate.Collector
	if in.AnimalID != nil {
		v.Check(*in.AnimalID > 0, "id_animal", "must be a positive integer")
	}
	if in.EmployeeID != nil {
		v.Check(*in.EmployeeID > 0, "id_funcionario", "must be a positive integer")
	}
	if in.Price != nil {
		checkPrice(&v, *in.Price)
	}
	if in.Status != nil {
		v.OneOf("status_consulta", *in.Status, Statuses)
	}
	return v.Err()
}

func checkPrice(v *validate.Collector, p decimal.Decimal) {
	v.NonNegative("preco", p)
	v.MaxDigits("preco", p, pricePrecision)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if err := in.validate(); err != nil {
		return Appointment{}, err
	}

	status := Status(in.Status)
	if status == "" {
		status = StatusScheduled
	}

	now := clock.Now(s.now)
	a := Appointment{
		AnimalID:    in.AnimalID,
		EmployeeID:  in.EmployeeID,
		ScheduledAt: in.ScheduledAt.UTC().Truncate(time.Microsecond),
		Diagnosis:   trimPtr(in.Diagnosis),
		Status:      status,
		Price:       in.Price.Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var out Appointment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.animals.Exists(ctx, a.AnimalID); err != nil {
			return err
		}
		if err := s.employees.Exists(ctx, a.EmployeeID); err != nil {
			return err
		}
		var err error
		out, err = s.repo.Create(ctx, a)
		return err
	})
	return out, err
}

// List devuelve las consultas con animal, tutor y funcionario.
func (s *Service) List(ctx context.Context) ([]Detailed, error) {
	return s.repo.ListDetailed(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Detailed, error) {
	return s.repo.GetDetailed(ctx, id)
}

// Exists se usa como chequeo de padre desde payments.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

// AnimalOf devuelve el animal atendido en la consulta.
func (s *Service) AnimalOf(ctx context.Context, id int64) (animals.Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return animals.Animal{}, err
	}
	return s.animals.GetByID(ctx, a.AnimalID)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID int64) ([]Appointment, error) {
	if err := s.animals.Exists(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]Appointment, error) {
	if err := s.employees.Exists(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.ListByEmployee(ctx, employeeID)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Detailed, error) {
	if err := in.validate(); err != nil {
		return Detailed{}, err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.AnimalID != nil && *in.AnimalID != a.AnimalID {
			if err := s.animals.Exists(ctx, *in.AnimalID); err != nil {
				return err
			}
			a.AnimalID = *in.AnimalID
		}
		if in.EmployeeID != nil && *in.EmployeeID != a.EmployeeID {
			if err := s.employees.Exists(ctx, *in.EmployeeID); err != nil {
				return err
			}
			a.EmployeeID = *in.EmployeeID
		}
		if in.ScheduledAt != nil {
			a.ScheduledAt = in.ScheduledAt.UTC().Truncate(time.Microsecond)
		}
		switch {
		case in.ClearDiagnosis:
			a.Diagnosis = nil
		case in.Diagnosis != nil:
			a.Diagnosis = trimPtr(in.Diagnosis)
		}
		if in.Status != nil {
			a.Status = Status(*in.Status)
		}
		if in.Price != nil {
			a.Price = in.Price.Round(2)
		}
		a.UpdatedAt = clock.Touch(a.UpdatedAt, s.now)

		_, err = s.repo.Update(ctx, a)
		return err
	})
	if err != nil {
		return Detailed{}, err
	}
	return s.repo.GetDetailed(ctx, id)
}

// Delete rechaza borrar consultas con pagamento registrado (restrict).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.payments.CountByAppointment(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("appointment has a registered payment", nil,
				apperr.FieldError{Field: "id_consulta", Message: "remove the payment first"})
		}
		return s.repo.Delete(ctx, id)
	})
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
