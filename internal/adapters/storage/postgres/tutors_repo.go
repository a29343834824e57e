package postgres

import (
	"context"
	"time"

	"vet-clinic/internal/domain/tutors"

	sq "github.com/Masterminds/squirrel"
)

const tutorColumns = "id_tutor, nome, telefone, email, created_at, updated_at"

type tutorRow struct {
	ID        int64     `db:"id_tutor"`
	Nome      string    `db:"nome"`
	Telefone  string    `db:"telefone"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r tutorRow) toDomain() tutors.Tutor {
	return tutors.Tutor{
		ID:        r.ID,
		Name:      r.Nome,
		Phone:     r.Telefone,
		Email:     r.Email,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type TutorRepo struct {
	db DB
}

func NewTutorRepo(db DB) *TutorRepo {
	return &TutorRepo{db: db}
}

func (r *TutorRepo) Create(ctx context.Context, t tutors.Tutor) (tutors.Tutor, error) {
	b := psql.Insert("tutores").
		Columns("nome", "telefone", "email", "created_at", "updated_at").
		Values(t.Name, t.Phone, t.Email, t.CreatedAt, t.UpdatedAt).
		Suffix("RETURNING " + tutorColumns)

	var row tutorRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return tutors.Tutor{}, mapError(err, opWrite, "tutor", t.Email)
	}
	return row.toDomain(), nil
}

func (r *TutorRepo) List(ctx context.Context) ([]tutors.Tutor, error) {
	b := psql.Select(tutorColumns).From("tutores").OrderBy("id_tutor ASC")

	var rows []tutorRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, b); err != nil {
		return nil, mapError(err, opRead, "tutor", "list")
	}
	out := make([]tutors.Tutor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TutorRepo) GetByID(ctx context.Context, id int64) (tutors.Tutor, error) {
	b := psql.Select(tutorColumns).From("tutores").Where(sq.Eq{"id_tutor": id})

	var row tutorRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return tutors.Tutor{}, mapError(err, opRead, "tutor", id)
	}
	return row.toDomain(), nil
}

func (r *TutorRepo) GetByName(ctx context.Context, name string) (tutors.Tutor, error) {
	b := psql.Select(tutorColumns).From("tutores").
		Where(sq.Eq{"nome": name}).
		OrderBy("id_tutor ASC").
		Limit(1)

	var row tutorRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return tutors.Tutor{}, mapError(err, opRead, "tutor", name)
	}
	return row.toDomain(), nil
}

func (r *TutorRepo) Update(ctx context.Context, t tutors.Tutor) (tutors.Tutor, error) {
	b := psql.Update("tutores").
		Set("nome", t.Name).
		Set("telefone", t.Phone).
		Set("email", t.Email).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id_tutor": t.ID}).
		Suffix("RETURNING " + tutorColumns)

	var row tutorRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return tutors.Tutor{}, mapError(err, opWrite, "tutor", t.ID)
	}
	return row.toDomain(), nil
}

func (r *TutorRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, QuerierFromCtx(ctx, r.db), "tutores", "id_tutor", "tutor", id)
}
