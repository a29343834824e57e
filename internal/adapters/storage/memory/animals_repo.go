package memory

import (
	"context"
	"sort"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/platform/apperr"
)

type AnimalRepo struct {
	s *Store
}

func NewAnimalRepo(s *Store) *AnimalRepo {
	return &AnimalRepo{s: s}
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// FK como en el schema.
	if _, ok := r.s.tutors[a.TutorID]; !ok {
		return animals.Animal{}, apperr.NotFound("tutor", a.TutorID)
	}
	a.ID = r.s.nextID("animais")
	r.s.animals[a.ID] = a
	return a, nil
}

func (r *AnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.animals), nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[id]
	if !ok {
		return animals.Animal{}, apperr.NotFound("animal", id)
	}
	return a, nil
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[a.ID]; !ok {
		return animals.Animal{}, apperr.NotFound("animal", a.ID)
	}
	if _, ok := r.s.tutors[a.TutorID]; !ok {
		return animals.Animal{}, apperr.NotFound("tutor", a.TutorID)
	}
	r.s.animals[a.ID] = a
	return a, nil
}

func (r *AnimalRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.animals[id]; !ok {
		return apperr.NotFound("animal", id)
	}
	for _, c := range r.s.appointments {
		if c.AnimalID == id {
			return apperr.Conflict("animal has registered appointments", nil)
		}
	}
	delete(r.s.animals, id)
	return nil
}

func (r *AnimalRepo) ListByTutor(ctx context.Context, tutorID int64) ([]animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range sortedByID(r.s.animals) {
		if a.TutorID == tutorID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *AnimalRepo) CountByTutor(ctx context.Context, tutorID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, a := range r.s.animals {
		if a.TutorID == tutorID {
			n++
		}
	}
	return n, nil
}
