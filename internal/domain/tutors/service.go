package tutors

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
	repo    Repository
	animals AnimalCounter
	tx      storage.TxRunner
	now     func() time.Time
}

func NewService(repo Repository, animals AnimalCounter, tx storage.TxRunner) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		tx:      tx,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name  string
	Phone string
	Email string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name  *string
	Phone *string
	Email *string
}

func (in CreateInput) validate() error {
	var v validate.Collector
	v.Required("nome", in.Name)
	v.Required("telefone", in.Phone)
	if v.Required("email", in.Email) {
		v.Email("email", in.Email)
	}
	v.MaxLen("nome", in.Name, 255)
	return v.Err()
}

func (in UpdateInput) validate() error {
	var v validate.Collector
	if in.Name != nil {
		v.Check(strings.TrimSpace(*in.Name) != "", "nome", "must not be empty")
		v.MaxLen("nome", *in.Name, 255)
	}
	if in.Phone != nil {
		v.Check(strings.TrimSpace(*in.Phone) != "", "telefone", "must not be empty")
	}
	if in.Email != nil {
		v.Email("email", *in.Email)
	}
	return v.Err()
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Tutor, error) {
	if err := in.validate(); err != nil {
		return Tutor{}, err
	}

	now := clock.Now(s.now)
	return s.repo.Create(ctx, Tutor{
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) List(ctx context.Context) ([]Tutor, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Tutor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Tutor, error) {
	return s.repo.GetByName(ctx, name)
}

// Exists se usa como chequeo de padre desde animals.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Tutor, error) {
	if err := in.validate(); err != nil {
		return Tutor{}, err
	}

	var out Tutor
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			t.Name = strings.TrimSpace(*in.Name)
		}
		if in.Phone != nil {
			t.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Email != nil {
			t.Email = strings.TrimSpace(*in.Email)
		}
		t.UpdatedAt = clock.Touch(t.UpdatedAt, s.now)

		out, err = s.repo.Update(ctx, t)
		return err
	})
	return out, err
}

// Delete rechaza borrar tutores con animales (restrict).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.animals.CountByTutor(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("tutor has registered animals", nil,
				apperr.FieldError{Field: "id_tutor", Message: "remove or reassign the tutor's animals first"})
		}
		return s.repo.Delete(ctx, id)
	})
}
