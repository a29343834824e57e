package employees

import "time"

// Employee es un miembro del staff (normalmente veterinario).
type Employee struct {
	ID    int64
	Name  string
	Role  string
	Phone string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}
