package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)
	Update(ctx context.Context, a Animal) (Animal, error)
	Delete(ctx context.Context, id int64) error

	// Ordenado por nome ASC.
	ListByTutor(ctx context.Context, tutorID int64) ([]Animal, error)
	CountByTutor(ctx context.Context, tutorID int64) (int, error)
}

// TutorChecker devuelve NotFound si el tutor no existe.
// Lo implementa tutors.Service (evita el import directo).
type TutorChecker interface {
	Exists(ctx context.Context, id int64) error
}

// AppointmentCounter lo implementa el repo de consultas.
type AppointmentCounter interface {
	CountByAnimal(ctx context.Context, animalID int64) (int, error)
}
