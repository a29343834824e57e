package employees_test

import (
	"context"
	"testing"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedAppointments simula el conteo de consultas por funcionario.
type fixedAppointments map[int64]int

func (f fixedAppointments) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	return f[employeeID], nil
}

func newService(appts fixedAppointments) *employees.Service {
	s := memory.NewStore()
	return employees.NewService(memory.NewEmployeeRepo(s), appts, memory.NewTxManager(s))
}

func carla() employees.CreateInput {
	return employees.CreateInput{Name: "Dra. Carla", Role: "Veterinária", Phone: "(11) 3333-4444", Email: "carla@x.com"}
}

func TestCreate_AndGetByExactName(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	e, err := svc.Create(ctx, employees.CreateInput{Name: "  Dra. Carla ", Role: "Veterinária", Phone: "(11) 3333-4444", Email: "carla@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Dra. Carla", e.Name)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)

	got, err := svc.GetByName(ctx, "Dra. Carla")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = svc.GetByName(ctx, "Carla")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(nil)

	tests := []struct {
		name string
		in   employees.CreateInput
		msg  string
	}{
		{"missing role", employees.CreateInput{Name: "Ana", Phone: "1", Email: "a@x.com"}, "missing required information"},
		{"bad email", employees.CreateInput{Name: "Ana", Role: "Auxiliar", Phone: "1", Email: "a.x.com"}, "invalid data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			e, ok := apperr.As(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Equal(t, tt.msg, e.Message)
		})
	}
}

func TestEmailUniqueness(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, carla())
	require.NoError(t, err)

	dup := carla()
	dup.Name = "Outra Carla"
	dup.Email = "CARLA@x.com"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	other, err := svc.Create(ctx, employees.CreateInput{Name: "Dr. Paulo", Role: "Veterinário", Phone: "1", Email: "paulo@x.com"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, other.ID, employees.UpdateInput{Email: ptr("carla@x.com")})
	require.ErrorIs(t, err, apperr.ErrValidation)
	e, _ := apperr.As(err)
	assert.Equal(t, "email", e.Fields[0].Field)
}

func TestUpdate_Partial(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	e, err := svc.Create(ctx, carla())
	require.NoError(t, err)

	u, err := svc.Update(ctx, e.ID, employees.UpdateInput{Role: ptr("Diretora")})
	require.NoError(t, err)
	assert.Equal(t, "Diretora", u.Role)
	assert.Equal(t, e.Email, u.Email)
	assert.True(t, u.UpdatedAt.After(e.UpdatedAt))

	_, err = svc.Update(ctx, e.ID, employees.UpdateInput{Name: ptr("  ")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Update(ctx, 99, employees.UpdateInput{Role: ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete_Restrict(t *testing.T) {
	ctx := context.Background()
	svc := newService(fixedAppointments{1: 2})

	e, err := svc.Create(ctx, carla())
	require.NoError(t, err)
	require.Equal(t, int64(1), e.ID)

	err = svc.Delete(ctx, e.ID)
	require.ErrorIs(t, err, apperr.ErrConstraint)
	ae, _ := apperr.As(err)
	assert.Equal(t, "id_funcionario", ae.Fields[0].Field)

	other, err := svc.Create(ctx, employees.CreateInput{Name: "Dr. Paulo", Role: "Veterinário", Phone: "1", Email: "paulo@x.com"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, other.ID))
	assert.ErrorIs(t, svc.Delete(ctx, other.ID), apperr.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }
