package postgres

import (
	"context"
	"time"

	"vet-clinic/internal/domain/animals"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// peso sale como texto para escanear en decimal.Decimal sin pasar por float.
const animalColumns = "id_animal, nome, especie, raca, peso::text AS peso, sexo, data_nascimento, " +
	"observacoes_medicas, status_animal, id_tutor, created_at, updated_at"

type animalRow struct {
	ID                 int64           `db:"id_animal"`
	Nome               string          `db:"nome"`
	Especie            string          `db:"especie"`
	Raca               string          `db:"raca"`
	Peso               decimal.Decimal `db:"peso"`
	Sexo               string          `db:"sexo"`
	DataNascimento     time.Time       `db:"data_nascimento"`
	ObservacoesMedicas *string         `db:"observacoes_medicas"`
	StatusAnimal       string          `db:"status_animal"`
	IDTutor            int64           `db:"id_tutor"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func (r animalRow) toDomain() animals.Animal {
	return animals.Animal{
		ID:           r.ID,
		Name:         r.Nome,
		Species:      r.Especie,
		Breed:        r.Raca,
		Weight:       r.Peso,
		Sex:          r.Sexo,
		BirthDate:    r.DataNascimento.UTC(),
		MedicalNotes: r.ObservacoesMedicas,
		Status:       animals.Status(r.StatusAnimal),
		TutorID:      r.IDTutor,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type AnimalRepo struct {
	db DB
}

func NewAnimalRepo(db DB) *AnimalRepo {
	return &AnimalRepo{db: db}
}

func (r *AnimalRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	b := psql.Insert("animais").
		Columns("nome", "especie", "raca", "peso", "sexo", "data_nascimento",
			"observacoes_medicas", "status_animal", "id_tutor", "created_at", "updated_at").
		Values(a.Name, a.Species, a.Breed, a.Weight, a.Sex, a.BirthDate,
			a.MedicalNotes, string(a.Status), a.TutorID, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING " + animalColumns)

	var row animalRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return animals.Animal{}, mapError(err, opWrite, "animal", a.Name)
	}
	return row.toDomain(), nil
}

func (r *AnimalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	return r.list(ctx, psql.Select(animalColumns).From("animais").OrderBy("id_animal ASC"))
}

func (r *AnimalRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	b := psql.Select(animalColumns).From("animais").Where(sq.Eq{"id_animal": id})

	var row animalRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return animals.Animal{}, mapError(err, opRead, "animal", id)
	}
	return row.toDomain(), nil
}

func (r *AnimalRepo) Update(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	b := psql.Update("animais").
		SetMap(map[string]any{
			"nome":                a.Name,
			"especie":             a.Species,
			"raca":                a.Breed,
			"peso":                a.Weight,
			"sexo":                a.Sex,
			"data_nascimento":     a.BirthDate,
			"observacoes_medicas": a.MedicalNotes,
			"status_animal":       string(a.Status),
			"id_tutor":            a.TutorID,
			"updated_at":          a.UpdatedAt,
		}).
		Where(sq.Eq{"id_animal": a.ID}).
		Suffix("RETURNING " + animalColumns)

	var row animalRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return animals.Animal{}, mapError(err, opWrite, "animal", a.ID)
	}
	return row.toDomain(), nil
}

func (r *AnimalRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, QuerierFromCtx(ctx, r.db), "animais", "id_animal", "animal", id)
}

func (r *AnimalRepo) ListByTutor(ctx context.Context, tutorID int64) ([]animals.Animal, error) {
	return r.list(ctx, psql.Select(animalColumns).From("animais").
		Where(sq.Eq{"id_tutor": tutorID}).
		OrderBy("nome ASC", "id_animal ASC"))
}

func (r *AnimalRepo) CountByTutor(ctx context.Context, tutorID int64) (int, error) {
	n, err := count(ctx, QuerierFromCtx(ctx, r.db), "animais", sq.Eq{"id_tutor": tutorID})
	if err != nil {
		return 0, mapError(err, opRead, "animal", tutorID)
	}
	return n, nil
}

func (r *AnimalRepo) list(ctx context.Context, b sq.SelectBuilder) ([]animals.Animal, error) {
	var rows []animalRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, b); err != nil {
		return nil, mapError(err, opRead, "animal", "list")
	}
	out := make([]animals.Animal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
