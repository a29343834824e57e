package postgres

import (
	"context"
	"errors"
	"fmt"

	"vet-clinic/internal/platform/apperr"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var errNoRows = pgx.ErrNoRows

type op int

const (
	opRead op = iota
	opWrite
	opDelete
)

// mapError traduce errores de pgx a apperr.
// Los errores de contexto no se mapean: pasan envueltos.
func mapError(err error, o op, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return apperr.NotFound(entity, key)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			msg, field := uniqueViolation(pgErr.ConstraintName)
			return apperr.Duplicate(msg, err, field)
		case codeForeignKeyViolation:
			if o == opDelete {
				return apperr.Conflict(entity+" has dependent records", err)
			}
			return &apperr.Error{Kind: apperr.KindNotFound, Message: "referenced record not found", Err: err}
		case codeCheckViolation:
			return &apperr.Error{Kind: apperr.KindValidation, Message: "invalid data", Err: err}
		}
	}

	return apperr.Unexpected(entity, err)
}

// uniqueViolation devuelve el mensaje y el campo repetido según la constraint.
func uniqueViolation(constraint string) (string, apperr.FieldError) {
	switch constraint {
	case "tutores_email_key", "funcionarios_email_key":
		return "email already registered", apperr.FieldError{Field: "email", Message: "already registered"}
	case "pagamentos_id_consulta_key":
		return "appointment already has a payment", apperr.FieldError{Field: "id_consulta", Message: "already paid"}
	default:
		return "duplicate record", apperr.FieldError{Field: constraint, Message: "already registered"}
	}
}
