package conn

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bawdo/cteq/cte"
	"github.com/bawdo/cteq/schema"
)

// PgxQuerier is the querying surface shared by *pgx.Conn, *pgxpool.Pool, and
// pgx transactions.
type PgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Pgx adapts a native pgx connection to the same assembly pipeline as DB.
// Statements are always rendered with the Postgres dialect.
type Pgx struct {
	q PgxQuerier
}

// NewPgx wraps a pgx connection, pool, or transaction.
func NewPgx(q PgxQuerier) *Pgx {
	return &Pgx{q: q}
}

// PgxExecutable is an assembled statement bound to a pgx connection.
type PgxExecutable struct {
	SQL    string
	Params []any

	q   PgxQuerier
	row schema.Row
}

// Row returns the row shape of the statement's result set.
func (e *PgxExecutable) Row() schema.Row { return e.row }

// Query runs the statement and returns the native pgx rows.
func (e *PgxExecutable) Query(ctx context.Context) (pgx.Rows, error) {
	rows, err := e.q.Query(ctx, e.SQL, e.Params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// WithCTE assembles a non-recursive WITH statement over this connection.
// An empty column name list renders no explicit column list.
func (p *Pgx) WithCTE(name string, columns []string, parts cte.Parts) (*PgxExecutable, error) {
	cols, err := bindColumns(columns, parts.Body.Row())
	if err != nil {
		return nil, err
	}
	def, err := cte.New(name, cols, parts)
	if err != nil {
		return nil, err
	}
	return p.executable(def), nil
}

// WithRecursive assembles a WITH RECURSIVE statement over this connection.
// An empty column name list renders no explicit column list.
func (p *Pgx) WithRecursive(name string, columns []string, parts cte.RecursiveParts) (*PgxExecutable, error) {
	cols, err := bindColumns(columns, parts.Seed.Row())
	if err != nil {
		return nil, err
	}
	def, err := cte.NewRecursive(name, cols, parts)
	if err != nil {
		return nil, err
	}
	return p.executable(def), nil
}

// Assemble renders a prebuilt definition for pgx execution.
func (p *Pgx) Assemble(def *cte.Definition) *PgxExecutable {
	return p.executable(def)
}

func (p *Pgx) executable(def *cte.Definition) *PgxExecutable {
	asm := def.Assemble(Postgres.NewVisitor())
	return &PgxExecutable{SQL: asm.SQL, Params: asm.Params, q: p.q, row: asm.Row}
}

// LoadPgx runs the statement and collects every row through fn using pgx's
// native row collection.
func LoadPgx[T any](ctx context.Context, e *PgxExecutable, fn pgx.RowToFunc[T]) ([]T, error) {
	rows, err := e.Query(ctx)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, fn)
}
