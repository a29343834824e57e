package memory

import (
	"context"
	"sort"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/platform/apperr"
)

type AppointmentRepo struct {
	s *Store
}

func NewAppointmentRepo(s *Store) *AppointmentRepo {
	return &AppointmentRepo{s: s}
}

func (r *AppointmentRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(a); err != nil {
		return appointments.Appointment{}, err
	}
	a.ID = r.s.nextID("consultas")
	r.s.appointments[a.ID] = a
	return a, nil
}

func (r *AppointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.appointments), nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, apperr.NotFound("appointment", id)
	}
	return a, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[a.ID]; !ok {
		return appointments.Appointment{}, apperr.NotFound("appointment", a.ID)
	}
	if err := r.checkRefs(a); err != nil {
		return appointments.Appointment{}, err
	}
	r.s.appointments[a.ID] = a
	return a, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return apperr.NotFound("appointment", id)
	}
	for _, p := range r.s.payments {
		if p.AppointmentID == id {
			return apperr.Conflict("appointment has a registered payment", nil)
		}
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *AppointmentRepo) ListDetailed(ctx context.Context) ([]appointments.Detailed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := sortedByID(r.s.appointments)
	sortByScheduleDesc(list)

	out := make([]appointments.Detailed, 0, len(list))
	for _, a := range list {
		out = append(out, r.detail(a))
	}
	return out, nil
}

func (r *AppointmentRepo) GetDetailed(ctx context.Context, id int64) (appointments.Detailed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Detailed{}, apperr.NotFound("appointment", id)
	}
	return r.detail(a), nil
}

func (r *AppointmentRepo) ListByAnimal(ctx context.Context, animalID int64) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool { return a.AnimalID == animalID }), nil
}

func (r *AppointmentRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]appointments.Appointment, error) {
	return r.filter(func(a appointments.Appointment) bool { return a.EmployeeID == employeeID }), nil
}

func (r *AppointmentRepo) CountByAnimal(ctx context.Context, animalID int64) (int, error) {
	return len(r.filter(func(a appointments.Appointment) bool { return a.AnimalID == animalID })), nil
}

func (r *AppointmentRepo) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	return len(r.filter(func(a appointments.Appointment) bool { return a.EmployeeID == employeeID })), nil
}

func (r *AppointmentRepo) filter(keep func(appointments.Appointment) bool) []appointments.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range sortedByID(r.s.appointments) {
		if keep(a) {
			out = append(out, a)
		}
	}
	sortByScheduleDesc(out)
	return out
}

// detail arma el join animal -> tutor y funcionario. Requiere mu tomado.
func (r *AppointmentRepo) detail(a appointments.Appointment) appointments.Detailed {
	animal := r.s.animals[a.AnimalID]
	return appointments.Detailed{
		Appointment: a,
		Animal:      animal,
		Tutor:       r.s.tutors[animal.TutorID],
		Employee:    r.s.employees[a.EmployeeID],
	}
}

func (r *AppointmentRepo) checkRefs(a appointments.Appointment) error {
	if _, ok := r.s.animals[a.AnimalID]; !ok {
		return apperr.NotFound("animal", a.AnimalID)
	}
	if _, ok := r.s.employees[a.EmployeeID]; !ok {
		return apperr.NotFound("employee", a.EmployeeID)
	}
	return nil
}

// sortByScheduleDesc: data_hora DESC, empates por id ASC.
func sortByScheduleDesc(list []appointments.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ScheduledAt.After(list[j].ScheduledAt)
	})
}
