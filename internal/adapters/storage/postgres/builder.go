// Package postgres implementa los repositorios sobre pgxpool.
// Las consultas se arman con squirrel y se escanean con scany.
package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// getOne ejecuta b y escanea una fila en dst.
func getOne(ctx context.Context, q Querier, dst any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Get(ctx, q, dst, query, args...)
}

func getAll(ctx context.Context, q Querier, dst any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dst, query, args...)
}

func count(ctx context.Context, q Querier, table string, where sq.Eq) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// deleteByID devuelve NotFound si no borró ninguna fila.
func deleteByID(ctx context.Context, q Querier, table, idCol, entity string, id int64) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{idCol: id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, opDelete, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(errNoRows, opDelete, entity, id)
	}
	return nil
}
