package tutors

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/platform/apperr"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	next int64
	byID map[int64]Tutor
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Tutor{}}
}

func (r *testRepo) Create(ctx context.Context, t Tutor) (Tutor, error) {
	for _, existing := range r.byID {
		if existing.Email == t.Email {
			return Tutor{}, apperr.Duplicate("email already registered", nil)
		}
	}
	r.next++
	t.ID = r.next
	r.byID[t.ID] = t
	return t, nil
}

func (r *testRepo) List(ctx context.Context) ([]Tutor, error) {
	out := make([]Tutor, 0, len(r.byID))
	for i := int64(1); i <= r.next; i++ {
		if t, ok := r.byID[i]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Tutor, error) {
	t, ok := r.byID[id]
	if !ok {
		return Tutor{}, apperr.NotFound("tutor", id)
	}
	return t, nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (Tutor, error) {
	for _, t := range r.byID {
		if t.Name == name {
			return t, nil
		}
	}
	return Tutor{}, apperr.NotFound("tutor", name)
}

func (r *testRepo) Update(ctx context.Context, t Tutor) (Tutor, error) {
	if _, ok := r.byID[t.ID]; !ok {
		return Tutor{}, apperr.NotFound("tutor", t.ID)
	}
	r.byID[t.ID] = t
	return t, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("tutor", id)
	}
	delete(r.byID, id)
	return nil
}

type fixedAnimals map[int64]int

func (f fixedAnimals) CountByTutor(ctx context.Context, tutorID int64) (int, error) {
	return f[tutorID], nil
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(animals fixedAnimals) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, animals, directTx{})
	frozen := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestCreate_MissingFields(t *testing.T) {
	svc, repo := newTestService(nil)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Ana"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	e, _ := apperr.As(err)
	if e.Message != "missing required information" {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if len(repo.byID) != 0 {
		t.Fatal("no row should be created")
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Ana", Phone: "1", Email: "nope"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_TimestampsEqual(t *testing.T) {
	svc, _ := newTestService(nil)

	tu, err := svc.Create(context.Background(), CreateInput{Name: " Ana Silva ", Phone: "(11) 91234-5678", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tu.ID <= 0 {
		t.Fatalf("expected positive id, got %d", tu.ID)
	}
	if tu.Name != "Ana Silva" {
		t.Fatalf("name not trimmed: %q", tu.Name)
	}
	if !tu.CreatedAt.Equal(tu.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", tu.CreatedAt, tu.UpdatedAt)
	}
}

func TestUpdate_PartialAndTouch(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	tu, _ := svc.Create(ctx, CreateInput{Name: "Ana", Phone: "1", Email: "ana@x.com"})

	phone := "(11) 3333-4444"
	up, err := svc.Update(ctx, tu.ID, UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.Phone != phone || up.Name != "Ana" || up.Email != "ana@x.com" {
		t.Fatalf("unexpected update result %+v", up)
	}
	// El reloj está congelado: igual debe avanzar.
	if !up.UpdatedAt.After(tu.UpdatedAt) {
		t.Fatalf("updatedAt did not increase: %v -> %v", tu.UpdatedAt, up.UpdatedAt)
	}
	if !up.CreatedAt.Equal(tu.CreatedAt) {
		t.Fatal("createdAt must not change")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)
	name := "X"
	_, err := svc.Update(context.Background(), 99, UpdateInput{Name: &name})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	tu, _ := svc.Create(ctx, CreateInput{Name: "Ana", Phone: "1", Email: "ana@x.com"})

	empty := "  "
	_, err := svc.Update(ctx, tu.ID, UpdateInput{Name: &empty})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete_RestrictedByAnimals(t *testing.T) {
	svc, repo := newTestService(fixedAnimals{1: 2})
	ctx := context.Background()
	tu, _ := svc.Create(ctx, CreateInput{Name: "Ana", Phone: "1", Email: "ana@x.com"})

	err := svc.Delete(ctx, tu.ID)
	if !errors.Is(err, apperr.ErrConstraint) {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if _, ok := repo.byID[tu.ID]; !ok {
		t.Fatal("tutor should still exist")
	}
}

func TestDelete_ThenNotFound(t *testing.T) {
	svc, _ := newTestService(fixedAnimals{})
	ctx := context.Background()
	tu, _ := svc.Create(ctx, CreateInput{Name: "Ana", Phone: "1", Email: "ana@x.com"})

	if err := svc.Delete(ctx, tu.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, tu.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, tu.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
