package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *Store
	tutors    *TutorRepo
	animals   *AnimalRepo
	employees *EmployeeRepo
	appts     *AppointmentRepo
	payments  *PaymentRepo
}

func newFixture() fixture {
	s := NewStore()
	return fixture{
		store:     s,
		tutors:    NewTutorRepo(s),
		animals:   NewAnimalRepo(s),
		employees: NewEmployeeRepo(s),
		appts:     NewAppointmentRepo(s),
		payments:  NewPaymentRepo(s),
	}
}

func TestTutorRepo_IDsAreMonotonicAndEmailUnique(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	b, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Bia", Email: "bia@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	require.NoError(t, f.tutors.Delete(ctx, b.ID))
	c, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Caio", Email: "caio@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID, "ids are never reused")

	_, err = f.tutors.Create(ctx, tutors.Tutor{Name: "Dup", Email: "ANA@x.com"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	a.Email = "caio@x.com"
	_, err = f.tutors.Update(ctx, a)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	list, err := f.tutors.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)
	assert.Equal(t, "Caio", list[1].Name)
}

func TestTutorRepo_GetByNameExact(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Ana Souza", Email: "ana@x.com"})
	require.NoError(t, err)

	got, err := f.tutors.GetByName(ctx, "Ana Souza")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)

	_, err = f.tutors.GetByName(ctx, "ana souza")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAnimalRepo_ListByTutorSortedByName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tu, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	for _, name := range []string{"Rex", "Bidu", "Mel"} {
		_, err := f.animals.Create(ctx, animals.Animal{Name: name, TutorID: tu.ID})
		require.NoError(t, err)
	}

	list, err := f.animals.ListByTutor(ctx, tu.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bidu", "Mel", "Rex"}, []string{list[0].Name, list[1].Name, list[2].Name})

	n, err := f.animals.CountByTutor(ctx, tu.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = f.animals.Create(ctx, animals.Animal{Name: "Orfão", TutorID: 42})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	err = f.tutors.Delete(ctx, tu.ID)
	assert.True(t, errors.Is(err, apperr.ErrConstraint))
}

func seedAppointment(t *testing.T, f fixture, at time.Time) appointments.Appointment {
	t.Helper()
	ctx := context.Background()

	tu, err := f.tutors.Create(ctx, tutors.Tutor{Name: "Ana", Email: at.String() + "@x.com"})
	require.NoError(t, err)
	an, err := f.animals.Create(ctx, animals.Animal{Name: "Rex", TutorID: tu.ID})
	require.NoError(t, err)
	em, err := f.employees.Create(ctx, employees.Employee{Name: "Dr. Paulo", Email: at.String() + "@vet.com"})
	require.NoError(t, err)

	a, err := f.appts.Create(ctx, appointments.Appointment{
		AnimalID:    an.ID,
		EmployeeID:  em.ID,
		ScheduledAt: at,
		Status:      appointments.StatusScheduled,
		Price:       decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
	return a
}

func TestAppointmentRepo_DetailedJoinAndOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	early := seedAppointment(t, f, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	late := seedAppointment(t, f, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	list, err := f.appts.ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, late.ID, list[0].ID)
	assert.Equal(t, early.ID, list[1].ID)

	d, err := f.appts.GetDetailed(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", d.Animal.Name)
	assert.Equal(t, "Ana", d.Tutor.Name)
	assert.Equal(t, "Dr. Paulo", d.Employee.Name)

	_, err = f.appts.GetDetailed(ctx, 99)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestPaymentRepo_OnePerAppointment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := seedAppointment(t, f, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	p := payments.Payment{AppointmentID: a.ID, Amount: decimal.RequireFromString("100"), Method: payments.MethodPix, Status: payments.StatusPending}
	_, err := f.payments.Create(ctx, p)
	require.NoError(t, err)

	_, err = f.payments.Create(ctx, p)
	assert.True(t, errors.Is(err, apperr.ErrConstraint))

	err = f.appts.Delete(ctx, a.ID)
	assert.True(t, errors.Is(err, apperr.ErrConstraint))

	got, err := f.payments.GetByAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, payments.MethodPix, got.Method)
}

func TestTxManager_SerializesAndAllowsNesting(t *testing.T) {
	f := newFixture()
	tx := NewTxManager(f.store)
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(ctx, func(ctx context.Context) error {
				v := counter
				time.Sleep(time.Millisecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, counter)

	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		return tx.RunInTx(ctx, func(ctx context.Context) error { return nil })
	})
	assert.NoError(t, err)
}
