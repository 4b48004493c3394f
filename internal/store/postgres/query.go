package postgres

import (
	"context"
	"fmt"
	"strings"

	"libraryapi/internal/query"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var dialect = goqu.Dialect("postgres")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// sortColumn is the column behind a sort field. Folded columns sort by
// lower(col), matching the case-insensitive in-memory comparators.
type sortColumn struct {
	name   string
	folded bool
}

// selectQuery is a query.Query backed by a goqu select. Sorting prepends an
// ORDER BY term, so the newest ordering is the primary one.
type selectQuery[T any] struct {
	db      querier
	ds      *goqu.SelectDataset
	columns map[string]sortColumn
	scan    func(pgx.Row) (T, error)
}

func newSelectQuery[T any](db querier, ds *goqu.SelectDataset, columns map[string]sortColumn, scan func(pgx.Row) (T, error)) *selectQuery[T] {
	lower := make(map[string]sortColumn, len(columns))
	for field, col := range columns {
		lower[strings.ToLower(field)] = col
	}
	return &selectQuery[T]{db: db, ds: ds.Prepared(true), columns: lower, scan: scan}
}

func (q *selectQuery[T]) OrderBy(field string, descending bool) (query.Query[T], error) {
	col, ok := q.columns[strings.ToLower(field)]
	if !ok {
		return nil, &query.ConfigurationError{Msg: fmt.Sprintf("no column for sort field %q", field)}
	}
	var expr exp.Orderable = goqu.I(col.name)
	if col.folded {
		expr = goqu.Func("lower", goqu.I(col.name))
	}
	order := expr.Asc()
	if descending {
		order = expr.Desc()
	}
	next := *q
	next.ds = q.ds.OrderPrepend(order)
	return &next, nil
}

func (q *selectQuery[T]) Count(ctx context.Context) (int, error) {
	stmt, args, err := q.countSQL()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.db.QueryRow(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (q *selectQuery[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	stmt, args, err := q.pageSQL(offset, limit)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := q.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (q *selectQuery[T]) countSQL() (string, []any, error) {
	return q.ds.ClearOrder().ClearLimit().ClearOffset().
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()
}

func (q *selectQuery[T]) pageSQL(offset, limit int) (string, []any, error) {
	return q.ds.Offset(uint(max(offset, 0))).Limit(uint(max(limit, 0))).ToSQL()
}

// containsPattern builds an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}
