package postgres

import (
	"context"
	"time"

	"vet-clinic/internal/domain/employees"

	sq "github.com/Masterminds/squirrel"
)

const employeeColumns = "id_funcionario, nome, cargo, telefone, email, created_at, updated_at"

type employeeRow struct {
	ID        int64     `db:"id_funcionario"`
	Nome      string    `db:"nome"`
	Cargo     string    `db:"cargo"`
	Telefone  string    `db:"telefone"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r employeeRow) toDomain() employees.Employee {
	return employees.Employee{
		ID:        r.ID,
		Name:      r.Nome,
		Role:      r.Cargo,
		Phone:     r.Telefone,
		Email:     r.Email,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type EmployeeRepo struct {
	db DB
}

func NewEmployeeRepo(db DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Create(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	b := psql.Insert("funcionarios").
		Columns("nome", "cargo", "telefone", "email", "created_at", "updated_at").
		Values(e.Name, e.Role, e.Phone, e.Email, e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING " + employeeColumns)

	var row employeeRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return employees.Employee{}, mapError(err, opWrite, "employee", e.Email)
	}
	return row.toDomain(), nil
}

func (r *EmployeeRepo) List(ctx context.Context) ([]employees.Employee, error) {
	b := psql.Select(employeeColumns).From("funcionarios").OrderBy("id_funcionario ASC")

	var rows []employeeRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, b); err != nil {
		return nil, mapError(err, opRead, "employee", "list")
	}
	out := make([]employees.Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (employees.Employee, error) {
	b := psql.Select(employeeColumns).From("funcionarios").Where(sq.Eq{"id_funcionario": id})

	var row employeeRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return employees.Employee{}, mapError(err, opRead, "employee", id)
	}
	return row.toDomain(), nil
}

func (r *EmployeeRepo) GetByName(ctx context.Context, name string) (employees.Employee, error) {
	b := psql.Select(employeeColumns).From("funcionarios").
		Where(sq.Eq{"nome": name}).
		OrderBy("id_funcionario ASC").
		Limit(1)

	var row employeeRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return employees.Employee{}, mapError(err, opRead, "employee", name)
	}
	return row.toDomain(), nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	b := psql.Update("funcionarios").
		Set("nome", e.Name).
		Set("cargo", e.Role).
		Set("telefone", e.Phone).
		Set("email", e.Email).
		Set("updated_at", e.UpdatedAt).
		Where(sq.Eq{"id_funcionario": e.ID}).
		Suffix("RETURNING " + employeeColumns)

	var row employeeRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return employees.Employee{}, mapError(err, opWrite, "employee", e.ID)
	}
	return row.toDomain(), nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, QuerierFromCtx(ctx, r.db), "funcionarios", "id_funcionario", "employee", id)
}
