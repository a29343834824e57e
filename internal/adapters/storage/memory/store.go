// Package memory implementa los repositorios sobre maps en memoria.
// Se usa con DB_DRIVER=memory y en los tests end-to-end del router.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"
)

// Store guarda todas las tablas bajo un solo lock: las lecturas con join
// (consultas detalladas) necesitan una vista consistente de varias tablas.
type Store struct {
	mu sync.RWMutex

	tutors       map[int64]tutors.Tutor
	animals      map[int64]animals.Animal
	employees    map[int64]employees.Employee
	appointments map[int64]appointments.Appointment
	payments     map[int64]payments.Payment

	seq map[string]int64

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		tutors:       make(map[int64]tutors.Tutor),
		animals:      make(map[int64]animals.Animal),
		employees:    make(map[int64]employees.Employee),
		appointments: make(map[int64]appointments.Appointment),
		payments:     make(map[int64]payments.Payment),
		seq:          make(map[string]int64),
	}
}

// nextID es monotónico por tabla; nunca reutiliza ids borrados. Requiere mu tomado.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// sortedByID devuelve los valores de m en orden de inserción (id ASC).
func sortedByID[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

type txKey struct{}

// TxManager serializa las secciones críticas (chequeo de padre + escritura).
// No hay rollback: los servicios dejan la escritura como último paso.
type TxManager struct {
	s *Store
}

func NewTxManager(s *Store) *TxManager {
	return &TxManager{s: s}
}

func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}
