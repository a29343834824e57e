//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/platform/apperr"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// setupDB levanta un postgres compartido (una vez por corrida), aplica las
// migraciones y devuelve un pool limpio.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, sharedDSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE pagamentos, consultas, funcionarios, animais, tutores RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "vet",
			"POSTGRES_PASSWORD": "vet",
			"POSTGRES_DB":       "vetclinic",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("mapped port: %w", err)
	}

	return fmt.Sprintf("postgres://vet:vet@%s:%s/vetclinic?sslmode=disable", host, port.Port()), nil
}

func TestIntegration_FullGraph(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	tutorRepo := NewTutorRepo(pool)
	animalRepo := NewAnimalRepo(pool)
	employeeRepo := NewEmployeeRepo(pool)
	apptRepo := NewAppointmentRepo(pool)
	paymentRepo := NewPaymentRepo(pool)

	tu, err := tutorRepo.Create(ctx, tutors.Tutor{Name: "Ana", Phone: "(11) 99999-0000", Email: "ana@x.com", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, now, tu.CreatedAt)

	_, err = tutorRepo.Create(ctx, tutors.Tutor{Name: "Outra", Phone: "1", Email: "ANA@x.com", CreatedAt: now, UpdatedAt: now})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "email is unique ignoring case")

	an, err := animalRepo.Create(ctx, animals.Animal{
		Name: "Rex", Species: "Cão", Breed: "SRD", Weight: decimal.RequireFromString("12.5"), Sex: "M",
		BirthDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), Status: animals.StatusActive,
		TutorID: tu.ID, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "12.50", an.Weight.StringFixed(2))
	assert.Equal(t, "2020-01-15", an.BirthDate.Format("2006-01-02"))

	em, err := employeeRepo.Create(ctx, employees.Employee{Name: "Dr. Paulo", Role: "Veterinário", Phone: "1", Email: "paulo@vet.com", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	ap, err := apptRepo.Create(ctx, appointments.Appointment{
		AnimalID: an.ID, EmployeeID: em.ID, ScheduledAt: now.Add(time.Hour),
		Status: appointments.StatusScheduled, Price: decimal.RequireFromString("150"),
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	d, err := apptRepo.GetDetailed(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", d.Tutor.Name)
	assert.Equal(t, "Dr. Paulo", d.Employee.Name)

	p := payments.Payment{
		AppointmentID: ap.ID, Amount: decimal.RequireFromString("150"), PaidAt: now,
		Method: payments.MethodPix, Status: payments.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	_, err = paymentRepo.Create(ctx, p)
	require.NoError(t, err)
	_, err = paymentRepo.Create(ctx, p)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	assert.True(t, errors.Is(apptRepo.Delete(ctx, ap.ID), apperr.ErrConstraint))
	assert.True(t, errors.Is(tutorRepo.Delete(ctx, tu.ID), apperr.ErrConstraint))

	_, err = animalRepo.Create(ctx, animals.Animal{
		Name: "X", Species: "Gato", Breed: "SRD", Weight: decimal.Zero, Sex: "F",
		BirthDate: now, Status: "Voando", TutorID: tu.ID, CreatedAt: now, UpdatedAt: now,
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation), "CHECK constraint")
}

func TestIntegration_TxRollback(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	repo := NewTutorRepo(pool)
	err := NewTxManager(pool).RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, tutors.Tutor{Name: "Tmp", Phone: "1", Email: "tmp@x.com", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
