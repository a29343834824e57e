package animals_test

import (
	"context"
	"testing"
	"time"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/apperr"
	"vet-clinic/internal/platform/validate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memory.Store
	tutors  *tutors.Service
	animals *animals.Service
	tutorID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	tx := memory.NewTxManager(s)
	tutorsSvc := tutors.NewService(memory.NewTutorRepo(s), memory.NewAnimalRepo(s), tx)
	svc := animals.NewService(memory.NewAnimalRepo(s), tutorsSvc, memory.NewAppointmentRepo(s), tx)

	tu, err := tutorsSvc.Create(context.Background(), tutors.CreateInput{Name: "Ana Silva", Phone: "(11) 91234-5678", Email: "ana@x.com"})
	require.NoError(t, err)
	return &fixture{store: s, tutors: tutorsSvc, animals: svc, tutorID: tu.ID}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) input(name string) animals.CreateInput {
	birth := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	return animals.CreateInput{
		Name: name, Species: "Cachorro", Breed: "Labrador", Weight: dec("12.5"),
		Sex: "M", BirthDate: &birth, TutorID: f.tutorID,
	}
}

func TestCreate_DefaultsAndRounding(t *testing.T) {
	f := newFixture(t)

	a, err := f.animals.Create(context.Background(), f.input("Rex"))
	require.NoError(t, err)
	assert.Positive(t, a.ID)
	assert.Equal(t, animals.StatusActive, a.Status)
	assert.Equal(t, "12.50", a.Weight.StringFixed(2))
	assert.Nil(t, a.MedicalNotes)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestCreate_MissingAndInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.animals.Create(ctx, animals.CreateInput{Name: "Rex"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	e, _ := apperr.As(err)
	assert.Equal(t, validate.MsgMissing, e.Message)

	in := f.input("Rex")
	in.Weight = dec("-1")
	in.Sex = "Macho"
	in.Status = "Perdido"
	_, err = f.animals.Create(ctx, in)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, validate.MsgInvalid, e.Message)
	fields := map[string]bool{}
	for _, fe := range e.Fields {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{"peso": true, "sexo": true, "status_animal": true}, fields)

	list, err := f.animals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_UnknownTutor(t *testing.T) {
	f := newFixture(t)

	in := f.input("Rex")
	in.TutorID = 999
	_, err := f.animals.Create(context.Background(), in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdate_PartialAndClearNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("Rex")
	in.MedicalNotes = ptr("alergia")
	created, err := f.animals.Create(ctx, in)
	require.NoError(t, err)

	updated, err := f.animals.Update(ctx, created.ID, animals.UpdateInput{Weight: dec("13"), ClearNotes: true})
	require.NoError(t, err)
	assert.Equal(t, "13.00", updated.Weight.StringFixed(2))
	assert.Nil(t, updated.MedicalNotes)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Species, updated.Species)
	assert.Equal(t, created.TutorID, updated.TutorID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.animals.Create(ctx, f.input("Rex"))
	require.NoError(t, err)

	_, err = f.animals.Update(ctx, created.ID, animals.UpdateInput{TutorID: ptr(int64(77))})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.animals.Update(ctx, created.ID, animals.UpdateInput{Status: ptr("Perdido")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.animals.Update(ctx, 404, animals.UpdateInput{Name: ptr("Thor")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := f.animals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tutorID, got.TutorID)
	assert.Equal(t, animals.StatusActive, got.Status)
}

func TestListByTutor_SortedByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, n := range []string{"Thor", "Mimi", "Bidu"} {
		_, err := f.animals.Create(ctx, f.input(n))
		require.NoError(t, err)
	}

	list, err := f.animals.ListByTutor(ctx, f.tutorID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Bidu", "Mimi", "Thor"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = f.animals.ListByTutor(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete_RestrictedByAppointments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rex, err := f.animals.Create(ctx, f.input("Rex"))
	require.NoError(t, err)

	emp, err := memory.NewEmployeeRepo(f.store).Create(ctx, employees.Employee{Name: "Dra. Carla", Role: "Veterinária", Phone: "1", Email: "c@x.com"})
	require.NoError(t, err)
	_, err = memory.NewAppointmentRepo(f.store).Create(ctx, appointments.Appointment{
		AnimalID: rex.ID, EmployeeID: emp.ID, ScheduledAt: time.Now().UTC(),
		Status: appointments.StatusScheduled, Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	err = f.animals.Delete(ctx, rex.ID)
	assert.ErrorIs(t, err, apperr.ErrConstraint)

	// el tutor tampoco se puede borrar mientras tenga animales
	assert.ErrorIs(t, f.tutors.Delete(ctx, f.tutorID), apperr.ErrConstraint)

	assert.ErrorIs(t, f.animals.Delete(ctx, 999), apperr.ErrNotFound)
}
