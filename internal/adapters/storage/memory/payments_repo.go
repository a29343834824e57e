package memory

import (
	"context"

	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/platform/apperr"
)

type PaymentRepo struct {
	s *Store
}

func NewPaymentRepo(s *Store) *PaymentRepo {
	return &PaymentRepo{s: s}
}

func (r *PaymentRepo) Create(ctx context.Context, p payments.Payment) (payments.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkRefs(p); err != nil {
		return payments.Payment{}, err
	}
	p.ID = r.s.nextID("pagamentos")
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]payments.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.payments), nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (payments.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[id]
	if !ok {
		return payments.Payment{}, apperr.NotFound("payment", id)
	}
	return p, nil
}

func (r *PaymentRepo) GetByAppointment(ctx context.Context, appointmentID int64) (payments.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if p.AppointmentID == appointmentID {
			return p, nil
		}
	}
	return payments.Payment{}, apperr.NotFound("payment for appointment", appointmentID)
}

func (r *PaymentRepo) Update(ctx context.Context, p payments.Payment) (payments.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.payments[p.ID]; !ok {
		return payments.Payment{}, apperr.NotFound("payment", p.ID)
	}
	if err := r.checkRefs(p); err != nil {
		return payments.Payment{}, err
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.payments[id]; !ok {
		return apperr.NotFound("payment", id)
	}
	delete(r.s.payments, id)
	return nil
}

func (r *PaymentRepo) CountByAppointment(ctx context.Context, appointmentID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, p := range r.s.payments {
		if p.AppointmentID == appointmentID {
			n++
		}
	}
	return n, nil
}

// checkRefs replica el FK y el UNIQUE(id_consulta). Requiere mu tomado.
func (r *PaymentRepo) checkRefs(p payments.Payment) error {
	if _, ok := r.s.appointments[p.AppointmentID]; !ok {
		return apperr.NotFound("appointment", p.AppointmentID)
	}
	for id, other := range r.s.payments {
		if id != p.ID && other.AppointmentID == p.AppointmentID {
			return apperr.Duplicate("appointment already has a payment", nil,
				apperr.FieldError{Field: "id_consulta", Message: "already paid"})
		}
	}
	return nil
}
