package memory

import (
	"context"

	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/apperr"
)

type TutorRepo struct {
	s *Store
}

func NewTutorRepo(s *Store) *TutorRepo {
	return &TutorRepo{s: s}
}

func (r *TutorRepo) Create(ctx context.Context, t tutors.Tutor) (tutors.Tutor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkEmail(t.Email, 0); err != nil {
		return tutors.Tutor{}, err
	}
	t.ID = r.s.nextID("tutores")
	r.s.tutors[t.ID] = t
	return t, nil
}

func (r *TutorRepo) List(ctx context.Context) ([]tutors.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.tutors), nil
}

func (r *TutorRepo) GetByID(ctx context.Context, id int64) (tutors.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tutors[id]
	if !ok {
		return tutors.Tutor{}, apperr.NotFound("tutor", id)
	}
	return t, nil
}

// GetByName busca coincidencia exacta; si hay varios devuelve el de menor id.
func (r *TutorRepo) GetByName(ctx context.Context, name string) (tutors.Tutor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range sortedByID(r.s.tutors) {
		if t.Name == name {
			return t, nil
		}
	}
	return tutors.Tutor{}, apperr.NotFound("tutor", name)
}

func (r *TutorRepo) Update(ctx context.Context, t tutors.Tutor) (tutors.Tutor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tutors[t.ID]; !ok {
		return tutors.Tutor{}, apperr.NotFound("tutor", t.ID)
	}
	if err := r.checkEmail(t.Email, t.ID); err != nil {
		return tutors.Tutor{}, err
	}
	r.s.tutors[t.ID] = t
	return t, nil
}

func (r *TutorRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tutors[id]; !ok {
		return apperr.NotFound("tutor", id)
	}
	for _, a := range r.s.animals {
		if a.TutorID == id {
			return apperr.Conflict("tutor has registered animals", nil)
		}
	}
	delete(r.s.tutors, id)
	return nil
}

func (r *TutorRepo) checkEmail(email string, self int64) error {
	for id, t := range r.s.tutors {
		if id != self && sameEmail(t.Email, email) {
			return apperr.Duplicate("email already registered", nil,
				apperr.FieldError{Field: "email", Message: "already registered"})
		}
	}
	return nil
}
