package postgres

import (
	"context"
	"time"

	"vet-clinic/internal/domain/payments"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const paymentColumns = "id_pagamento, id_consulta, valor::text AS valor, data_pagamento, " +
	"metodo, status_pagamento, created_at, updated_at"

type paymentRow struct {
	ID              int64           `db:"id_pagamento"`
	IDConsulta      int64           `db:"id_consulta"`
	Valor           decimal.Decimal `db:"valor"`
	DataPagamento   time.Time       `db:"data_pagamento"`
	Metodo          string          `db:"metodo"`
	StatusPagamento string          `db:"status_pagamento"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r paymentRow) toDomain() payments.Payment {
	return payments.Payment{
		ID:            r.ID,
		AppointmentID: r.IDConsulta,
		Amount:        r.Valor,
		PaidAt:        r.DataPagamento.UTC(),
		Method:        payments.Method(r.Metodo),
		Status:        payments.Status(r.StatusPagamento),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

type PaymentRepo struct {
	db DB
}

func NewPaymentRepo(db DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, p payments.Payment) (payments.Payment, error) {
	b := psql.Insert("pagamentos").
		Columns("id_consulta", "valor", "data_pagamento", "metodo", "status_pagamento", "created_at", "updated_at").
		Values(p.AppointmentID, p.Amount, p.PaidAt, string(p.Method), string(p.Status), p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + paymentColumns)

	var row paymentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return payments.Payment{}, mapError(err, opWrite, "payment", p.AppointmentID)
	}
	return row.toDomain(), nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]payments.Payment, error) {
	b := psql.Select(paymentColumns).From("pagamentos").OrderBy("id_pagamento ASC")

	var rows []paymentRow
	if err := getAll(ctx, QuerierFromCtx(ctx, r.db), &rows, b); err != nil {
		return nil, mapError(err, opRead, "payment", "list")
	}
	out := make([]payments.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (payments.Payment, error) {
	return r.getWhere(ctx, sq.Eq{"id_pagamento": id}, "payment", id)
}

func (r *PaymentRepo) GetByAppointment(ctx context.Context, appointmentID int64) (payments.Payment, error) {
	return r.getWhere(ctx, sq.Eq{"id_consulta": appointmentID}, "payment for appointment", appointmentID)
}

func (r *PaymentRepo) Update(ctx context.Context, p payments.Payment) (payments.Payment, error) {
	b := psql.Update("pagamentos").
		SetMap(map[string]any{
			"id_consulta":      p.AppointmentID,
			"valor":            p.Amount,
			"data_pagamento":   p.PaidAt,
			"metodo":           string(p.Method),
			"status_pagamento": string(p.Status),
			"updated_at":       p.UpdatedAt,
		}).
		Where(sq.Eq{"id_pagamento": p.ID}).
		Suffix("RETURNING " + paymentColumns)

	var row paymentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return payments.Payment{}, mapError(err, opWrite, "payment", p.ID)
	}
	return row.toDomain(), nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, QuerierFromCtx(ctx, r.db), "pagamentos", "id_pagamento", "payment", id)
}

func (r *PaymentRepo) CountByAppointment(ctx context.Context, appointmentID int64) (int, error) {
	n, err := count(ctx, QuerierFromCtx(ctx, r.db), "pagamentos", sq.Eq{"id_consulta": appointmentID})
	if err != nil {
		return 0, mapError(err, opRead, "payment", appointmentID)
	}
	return n, nil
}

func (r *PaymentRepo) getWhere(ctx context.Context, where sq.Eq, entity string, key int64) (payments.Payment, error) {
	b := psql.Select(paymentColumns).From("pagamentos").Where(where)

	var row paymentRow
	if err := getOne(ctx, QuerierFromCtx(ctx, r.db), &row, b); err != nil {
		return payments.Payment{}, mapError(err, opRead, entity, key)
	}
	return row.toDomain(), nil
}
