package postgres

import (
	"context"
	"time"

	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/tutors"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const appointmentColumns = "id_consulta, id_animal, id_funcionario, data_hora, diagnostico, " +
	"status_consulta, preco::text AS preco, created_at, updated_at"

type appointmentRow struct {
	ID             int64           `db:"id_consulta"`
	IDAnimal       int64           `db:"id_animal"`
	IDFuncionario  int64           `db:"id_funcionario"`
	DataHora       time.Time       `db:"data_hora"`
	Diagnostico    *string         `db:"diagnostico"`
	StatusConsulta string          `db:"status_consulta"`
	Preco          decimal.Decimal `db:"preco"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r appointmentRow) toDomain() appointments.Appointment {
	return appointments.Appointment{
		ID:          r.ID,
		AnimalID:    r.IDAnimal,
		EmployeeID:  r.IDFuncionario,
		ScheduledAt: r.DataHora.UTC(),
		Diagnosis:   r.Diagnostico,
		Status:      appointments.Status(r.StatusConsulta),
		Price:       r.Preco,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// Columnas del join: cada tabla con su prefijo para que no choquen nome/email/timestamps.
var detailedColumns = []string{
	"c.id_consulta", "c.id_animal", "c.id_funcionario", "c.data_hora", "c.diagnostico",
	"c.status_consulta", "c.preco::text AS preco", "c.created_at", "c.updated_at",

	"a.nome AS animal_nome", "a.especie AS animal_especie", "a.raca AS animal_raca",
	"a.peso::text AS animal_peso", "a.sexo AS animal_sexo", "a.data_nascimento AS animal_data_nascimento",
	"a.observacoes_medicas AS animal_observacoes_medicas", "a.status_animal AS animal_status_animal",
	"a.id_tutor AS animal_id_tutor", "a.created_at AS animal_created_at", "a.updated_at AS animal_updated_at",

	"t.nome AS tutor_nome", "t.telefone AS tutor_telefone", "t.email AS tutor_email",
	"t.created_at AS tutor_created_at", "t.updated_at AS tutor_updated_at",

	"f.nome AS funcionario_nome", "f.cargo AS funcionario_cargo", "f.telefone AS funcionario_telefone",
	"f.email AS funcionario_email", "f.created_at AS funcionario_created_at", "f.updated_at AS funcionario_updated_at",
}

type detailedRow struct {
	appointmentRow

	AnimalNome               string          `db:"animal_nome"`
	AnimalEspecie            string          `db:"animal_especie"`
	AnimalRaca               string          `db:"animal_raca"`
	AnimalPeso               decimal.Decimal `db:"animal_peso"`
	AnimalSexo               string          `db:"animal_sexo"`
	AnimalDataNascimento     time.Time       `db:"animal_data_nascimento"`
	AnimalObservacoesMedicas *string         `db:"animal_observacoes_medicas"`
	AnimalStatus             string          `db:"animal_status_animal"`
	AnimalIDTutor            int64           `db:"animal_id_tutor"`
	AnimalCreatedAt          time.Time       `db:"animal_created_at"`
	AnimalUpdatedAt          time.Time       `db:"animal_updated_at"`

	TutorNome      string    `db:"tutor_nome"`
	TutorTelefone  string    `db:"tutor_telefone"`
	TutorEmail     string    `db:"tutor_email"`
	TutorCreatedAt time.Time `db:"tutor_created_at"`
	TutorUpdatedAt time.Time `db:"tutor_updated_at"`

	FuncionarioNome      string    `db:"funcionario_nome"`
	FuncionarioCargo     string    `db:"funcionario_cargo"`
	FuncionarioTelefone  string    `db:"funcionario_telefone"`
	FuncionarioEmail     string    `db:"funcionario_email"`
	FuncionarioCreatedAt time.Time `db:"funcionario_created_at"`
	FuncionarioUpdatedAt time.Time `db:"funcionario_updated_at"`
}

func (r detailedRow) toDomain() appointments.Detailed {
	a := r.appointmentRow.toDomain()
	return appointments.Detailed{
		Appointment: a,
		Animal: animals.Animal{
			ID:           a.AnimalID,
			Name:         r.AnimalNome,
			Species:      r.AnimalEspecie,
			Breed:        r.AnimalRaca,
			Weight:       r.AnimalPeso,
			Sex:          r.AnimalSexo,
			BirthDate:    r.AnimalDataNascimento.UTC(),
			MedicalNotes: r.AnimalObservacoesMedicas,
			Status:       animals.Status(r.AnimalStatus),
			TutorID:      r.AnimalIDTutor,
			CreatedAt:    r.AnimalCreatedAt.UTC(),
			UpdatedAt:    r.AnimalUpdatedAt.UTC(),
		},
		Tutor: tutors.Tutor{
			ID:        r.AnimalIDTutor,
			Name:      r.TutorNome,
			Phone:     r.TutorTelefone,
			Email:     r.TutorEmail,
			CreatedAt: r.TutorCreatedAt.UTC(),
			UpdatedAt: r.TutorUpdatedAt.UTC(),
		},
		Employee: employees.Employee{
			ID:        a.EmployeeID,
			Name:      r.FuncionarioNome,
			Role:      r.FuncionarioCargo,
			Phone:     r.FuncionarioTelefone,
			Email:     r.FuncionarioEmail,
			CreatedAt: r.FuncionarioCreatedAt.UTC(),
			UpdatedAt: r.FuncionarioUpdatedAt.UTC(),
		},
	}
}

type AppointmentRepo struct {
	db DB
}

func NewAppointmentRepo(db DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	b := psql.Insert("consultas").
		Columns("id_animal", "id_funcionario", "data_hora", "diagnostico",
			"status_consulta", "preco", "created_at", "updated_at").
		Values(a.AnimalID, a.EmployeeID, a.ScheduledAt, a.Diagnosis,
			string(a.Status), a.Price, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING " + appointmentColumns)

	var row appointmentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return appointments.Appointment{}, mapError(err, opWrite, "appointment", a.AnimalID)
	}
	return row.toDomain(), nil
}

func (r *AppointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.list(ctx, psql.Select(appointmentColumns).From("consultas").OrderBy("id_consulta ASC"))
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (appointments.Appointment, error) {
	b := psql.Select(appointmentColumns).From("consultas").Where(sq.Eq{"id_consulta": id})

	var row appointmentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return appointments.Appointment{}, mapError(err, opRead, "appointment", id)
	}
	return row.toDomain(), nil
}

func (r *AppointmentRepo) Update(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	b := psql.Update("consultas").
		SetMap(map[string]any{
			"id_animal":       a.AnimalID,
			"id_funcionario":  a.EmployeeID,
			"data_hora":       a.ScheduledAt,
			"diagnostico":     a.Diagnosis,
			"status_consulta": string(a.Status),
			"preco":           a.Price,
			"updated_at":      a.UpdatedAt,
		}).
		Where(sq.Eq{"id_consulta": a.ID}).
		Suffix("RETURNING " + appointmentColumns)

	var row appointmentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return appointments.Appointment{}, mapError(err, opWrite, "appointment", a.ID)
	}
	return row.toDomain(), nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, QuerierFromCtx(ctx, r.db), "consultas", "id_consulta", "appointment", id)
}

func (r *AppointmentRepo) ListDetailed(ctx context.Context) ([]appointments.Detailed, error) {
	var rows []detailedRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, detailedSelect()); err != nil {
		return nil, mapError(err, opRead, "appointment", "list")
	}
	out := make([]appointments.Detailed, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AppointmentRepo) GetDetailed(ctx context.Context, id int64) (appointments.Detailed, error) {
	var row detailedRow
	b := detailedSelect().Where(sq.Eq{"c.id_consulta": id})
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return appointments.Detailed{}, mapError(err, opRead, "appointment", id)
	}
	return row.toDomain(), nil
}

func (r *AppointmentRepo) ListByAnimal(ctx context.Context, animalID int64) ([]appointments.Appointment, error) {
	return r.list(ctx, psql.Select(appointmentColumns).From("consultas").
		Where(sq.Eq{"id_animal": animalID}).
		OrderBy("data_hora DESC", "id_consulta ASC"))
}

func (r *AppointmentRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]appointments.Appointment, error) {
	return r.list(ctx, psql.Select(appointmentColumns).From("consultas").
		Where(sq.Eq{"id_funcionario": employeeID}).
		OrderBy("data_hora DESC", "id_consulta ASC"))
}

func (r *AppointmentRepo) CountByAnimal(ctx context.Context, animalID int64) (int, error) {
	n, err := count(ctx, QuerierFromCtx(ctx, r.db), "consultas", sq.Eq{"id_animal": animalID})
	if err != nil {
		return 0, mapError(err, opRead, "appointment", animalID)
	}
	return n, nil
}

func (r *AppointmentRepo) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	n, err := count(ctx, QuerierFromCtx(ctx, r.db), "consultas", sq.Eq{"id_funcionario": employeeID})
	if err != nil {
		return 0, mapError(err, opRead, "appointment", employeeID)
	}
	return n, nil
}

func (r *AppointmentRepo) list(ctx context.Context, b sq.SelectBuilder) ([]appointments.Appointment, error) {
	var rows []appointmentRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, b); err != nil {
		return nil, mapError(err, opRead, "appointment", "list")
	}
	out := make([]appointments.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func detailedSelect() sq.SelectBuilder {
	return psql.Select(detailedColumns...).
		From("consultas c").
		Join("animais a ON a.id_animal = c.id_animal").
		Join("tutores t ON t.id_tutor = a.id_tutor").
		Join("funcionarios f ON f.id_funcionario = c.id_funcionario").
		OrderBy("c.data_hora DESC", "c.id_consulta ASC")
}
