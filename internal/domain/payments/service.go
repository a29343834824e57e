package payments

import (
	"context"
	"time"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/clock"
	"vet-clinic/internal/platform/validate"
	"vet-clinic/internal/ports/storage"

	"github.com/shopspring/decimal"
)

const amountPrecision = 10

type Service struct {
	repo  Repository
	appts AppointmentChecker
	tx    storage.TxRunner
	now   func() time.Time
}

func NewService(repo Repository, appts AppointmentChecker, tx storage.TxRunner) *Service {
	return &Service{repo: repo, appts: appts, tx: tx, now: time.Now}
}

type CreateInput struct {
	AppointmentID int64
	Amount        *decimal.Decimal
	PaidAt        *time.Time // nil = ahora
	Method        string
	Status        string // vacío = Pendente
}

type UpdateInput struct {
	AppointmentID *int64
	Amount        *decimal.Decimal
	PaidAt        *time.Time
	Method        *string
	Status        *string
}

func (in CreateInput) validate() error {
	var v validate.Collector
	v.Present("id_consulta", in.AppointmentID != 0)
	v.Check(in.AppointmentID >= 0, "id_consulta", "must be a positive integer")
	if v.Present("valor", in.Amount != nil) {
		checkAmount(&v, *in.Amount)
	}
	if v.Required("metodo", in.Method) {
		v.OneOf("metodo", in.Method, Methods)
	}
	if in.Status != "" {
		v.OneOf("status_pagamento", in.Status, Statuses)
	}
	return v.Err()
}

func (in UpdateInput) validate() error {
	var v validate.Collector
	if in.AppointmentID != nil {
		v.Check(*in.AppointmentID > 0, "id_consulta", "must be a positive integer")
	}
	if in.Amount != nil {
		checkAmount(&v, *in.Amount)
	}
	if in.Method != nil {
		v.OneOf("metodo", *in.Method, Methods)
	}
	if in.Status != nil {
		v.OneOf("status_pagamento", *in.Status, Statuses)
	}
	return v.Err()
}

func checkAmount(v *validate.Collector, d decimal.Decimal) {
	v.NonNegative("valor", d)
	v.MaxDigits("valor", d, amountPrecision)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Payment, error) {
	if err := in.validate(); err != nil {
		return Payment{}, err
	}

	now := clock.Now(s.now)
	paidAt := now
	if in.PaidAt != nil {
		paidAt = in.PaidAt.UTC().Truncate(time.Microsecond)
	}
	status := Status(in.Status)
	if status == "" {
		status = StatusPending
	}

	p := Payment{
		AppointmentID: in.AppointmentID,
		Amount:        in.Amount.Round(2),
		PaidAt:        paidAt,
		Method:        Method(in.Method),
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var out Payment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, p.AppointmentID); err != nil {
			return err
		}
		var err error
		out, err = s.repo.Create(ctx, p)
		return err
	})
	return out, err
}

// ensureFree: la consulta existe y todavía no tiene pagamento.
func (s *Service) ensureFree(ctx context.Context, appointmentID int64) error {
	if err := s.appts.Exists(ctx, appointmentID); err != nil {
		return err
	}
	n, err := s.repo.CountByAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Duplicate("appointment already has a payment", nil,
			apperr.FieldError{Field: "id_consulta", Message: "already paid"})
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Payment, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByAppointment verifica primero que la consulta exista.
func (s *Service) GetByAppointment(ctx context.Context, appointmentID int64) (Payment, error) {
	if err := s.appts.Exists(ctx, appointmentID); err != nil {
		return Payment{}, err
	}
	return s.repo.GetByAppointment(ctx, appointmentID)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Payment, error) {
	if err := in.validate(); err != nil {
		return Payment{}, err
	}

	var out Payment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.AppointmentID != nil && *in.AppointmentID != p.AppointmentID {
			if err := s.ensureFree(ctx, *in.AppointmentID); err != nil {
				return err
			}
			p.AppointmentID = *in.AppointmentID
		}
		if in.Amount != nil {
			p.Amount = in.Amount.Round(2)
		}
		if in.PaidAt != nil {
			p.PaidAt = in.PaidAt.UTC().Truncate(time.Microsecond)
		}
		if in.Method != nil {
			p.Method = Method(*in.Method)
		}
		if in.Status != nil {
			p.Status = Status(*in.Status)
		}
		p.UpdatedAt = clock.Touch(p.UpdatedAt, s.now)

		out, err = s.repo.Update(ctx, p)
		return err
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
