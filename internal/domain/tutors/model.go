package tutors

import "time"

// Tutor es el responsable de uno o más animales.
type Tutor struct {
	ID    int64
	Name  string
	Phone string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}
