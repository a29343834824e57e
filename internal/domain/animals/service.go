package animals

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/clock"
	"vet-clinic/internal/platform/validate"
	"vet-clinic/internal/ports/storage"

	"github.com/shopspring/decimal"
)

const weightPrecision = 6

type Service struct {
	repo   Repository
	tutors TutorChecker
	appts  AppointmentCounter
	tx     storage.TxRunner
	now    func() time.Time
}

func NewService(repo Repository, tutors TutorChecker, appts AppointmentCounter, tx storage.TxRunner) *Service {
	return &Service{
		repo:   repo,
		tutors: tutors,
		appts:  appts,
		tx:     tx,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name         string
	Species      string
	Breed        string
	Weight       *decimal.Decimal
	Sex          string
	BirthDate    *time.Time
	MedicalNotes *string
	Status       string // vacío = Ativo
	TutorID      int64
}

// UpdateInput: nil = no tocar. MedicalNotes usa ClearNotes para distinguir null.
type UpdateInput struct {
	Name         *string
	Species      *string
	Breed        *string
	Weight       *decimal.Decimal
	Sex          *string
	BirthDate    *time.Time
	MedicalNotes *string
	ClearNotes   bool
	Status       *string
	TutorID      *int64
}

func (in CreateInput) validate() error {
	var v validate.Collector
	v.Required("nome", in.Name)
	v.Required("especie", in.Species)
	v.Required("raca", in.Breed)
	if v.Present("peso", in.Weight != nil) {
		checkWeight(&v, *in.Weight)
	}
	if v.Required("sexo", in.Sex) {
		checkSex(&v, in.Sex)
	}
	v.Present("data_nascimento", in.BirthDate != nil)
	v.Present("id_tutor", in.TutorID != 0)
	v.Check(in.TutorID >= 0, "id_tutor", "must be a positive integer")
	if in.Status != "" {
		v.OneOf("status_animal", in.Status, Statuses)
	}
	return v.Err()
}

func (in UpdateInput) validate() error {
	var v validate.Collector
	notEmpty(&v, "nome", in.Name)
	notEmpty(&v, "especie", in.Species)
	notEmpty(&v, "raca", in.Breed)
	if in.Weight != nil {
		checkWeight(&v, *in.Weight)
	}
	if in.Sex != nil {
		checkSex(&v, *in.Sex)
	}
	if in.Status != nil {
		v.OneOf("status_animal", *in.Status, Statuses)
	}
	if in.TutorID != nil {
		v.Check(*in.TutorID > 0, "id_tutor", "must be a positive integer")
	}
	return v.Err()
}

func notEmpty(v *validate.Collector, field string, val *string) {
	if val != nil {
		v.Check(strings.TrimSpace(*val) != "", field, "must not be empty")
	}
}

func checkWeight(v *validate.Collector, w decimal.Decimal) {
	v.NonNegative("peso", w)
	v.MaxDigits("peso", w, weightPrecision)
}

func checkSex(v *validate.Collector, s string) {
	v.Check(utf8.RuneCountInString(strings.TrimSpace(s)) == 1, "sexo", "must be a single character")
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if err := in.validate(); err != nil {
		return Animal{}, err
	}

	status := Status(in.Status)
	if status == "" {
		status = StatusActive
	}

	now := clock.Now(s.now)
	a := Animal{
		Name:         strings.TrimSpace(in.Name),
		Species:      strings.TrimSpace(in.Species),
		Breed:        strings.TrimSpace(in.Breed),
		Weight:       in.Weight.Round(2),
		Sex:          strings.TrimSpace(in.Sex),
		BirthDate:    in.BirthDate.UTC(),
		MedicalNotes: in.MedicalNotes,
		Status:       status,
		TutorID:      in.TutorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var out Animal
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tutors.Exists(ctx, a.TutorID); err != nil {
			return err
		}
		var err error
		out, err = s.repo.Create(ctx, a)
		return err
	})
	return out, err
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists se usa como chequeo de padre desde appointments.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.GetByID(ctx, id)
	return err
}

// ListByTutor verifica primero que el tutor exista.
func (s *Service) ListByTutor(ctx context.Context, tutorID int64) ([]Animal, error) {
	if err := s.tutors.Exists(ctx, tutorID); err != nil {
		return nil, err
	}
	return s.repo.ListByTutor(ctx, tutorID)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Animal, error) {
	if err := in.validate(); err != nil {
		return Animal{}, err
	}

	var out Animal
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			a.Name = strings.TrimSpace(*in.Name)
		}
		if in.Species != nil {
			a.Species = strings.TrimSpace(*in.Species)
		}
		if in.Breed != nil {
			a.Breed = strings.TrimSpace(*in.Breed)
		}
		if in.Weight != nil {
			a.Weight = in.Weight.Round(2)
		}
		if in.Sex != nil {
			a.Sex = strings.TrimSpace(*in.Sex)
		}
		if in.BirthDate != nil {
			a.BirthDate = in.BirthDate.UTC()
		}
		switch {
		case in.ClearNotes:
			a.MedicalNotes = nil
		case in.MedicalNotes != nil:
			a.MedicalNotes = in.MedicalNotes
		}
		if in.Status != nil {
			a.Status = Status(*in.Status)
		}
		if in.TutorID != nil && *in.TutorID != a.TutorID {
			if err := s.tutors.Exists(ctx, *in.TutorID); err != nil {
				return err
			}
			a.TutorID = *in.TutorID
		}
		a.UpdatedAt = clock.Touch(a.UpdatedAt, s.now)

		out, err = s.repo.Update(ctx, a)
		return err
	})
	return out, err
}

// Delete rechaza borrar animales con consultas (restrict).
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.appts.CountByAnimal(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("animal has registered appointments", nil,
				apperr.FieldError{Field: "id_animal", Message: "remove the animal's appointments first"})
		}
		return s.repo.Delete(ctx, id)
	})
}
