// Package clock normaliza timestamps a la precisión que guarda PostgreSQL.
package clock

import "time"

// Now trunca a microsegundos en UTC.
func Now(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

// Touch devuelve el nuevo updatedAt: estrictamente mayor que prev.
func Touch(prev time.Time, now func() time.Time) time.Time {
	t := Now(now)
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
