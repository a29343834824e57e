package memory

import (
	"context"

	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/platform/apperr"
)

type EmployeeRepo struct {
	s *Store
}

func NewEmployeeRepo(s *Store) *EmployeeRepo {
	return &EmployeeRepo{s: s}
}

func (r *EmployeeRepo) Create(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkEmail(e.Email, 0); err != nil {
		return employees.Employee{}, err
	}
	e.ID = r.s.nextID("funcionarios")
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]employees.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.employees), nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (employees.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employees.Employee{}, apperr.NotFound("employee", id)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByName(ctx context.Context, name string) (employees.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range sortedByID(r.s.employees) {
		if e.Name == name {
			return e, nil
		}
	}
	return employees.Employee{}, apperr.NotFound("employee", name)
}

func (r *EmployeeRepo) Update(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[e.ID]; !ok {
		return employees.Employee{}, apperr.NotFound("employee", e.ID)
	}
	if err := r.checkEmail(e.Email, e.ID); err != nil {
		return employees.Employee{}, err
	}
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return apperr.NotFound("employee", id)
	}
	for _, a := range r.s.appointments {
		if a.EmployeeID == id {
			return apperr.Conflict("employee has registered appointments", nil)
		}
	}
	delete(r.s.employees, id)
	return nil
}

func (r *EmployeeRepo) checkEmail(email string, self int64) error {
	for id, e := range r.s.employees {
		if id != self && sameEmail(e.Email, email) {
			return apperr.Duplicate("email already registered", nil,
				apperr.FieldError{Field: "email", Message: "already registered"})
		}
	}
	return nil
}
