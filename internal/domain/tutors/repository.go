package tutors

import "context"

type Repository interface {
	Create(ctx context.Context, t Tutor) (Tutor, error)
	List(ctx context.Context) ([]Tutor, error)
	GetByID(ctx context.Context, id int64) (Tutor, error)
	GetByName(ctx context.Context, name string) (Tutor, error)
	Update(ctx context.Context, t Tutor) (Tutor, error)
	Delete(ctx context.Context, id int64) error
}

// AnimalCounter lo implementa el repo de animales.
// Interfaz local para no importar animals desde acá.
type AnimalCounter interface {
	CountByTutor(ctx context.Context, tutorID int64) (int, error)
}
