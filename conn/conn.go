// Package conn executes assembled CTE statements against live databases.
// Both execution paths, the blocking database/sql adapter here and the pgx
// adapter in pgx.go, share the same definition and assembly code; they differ
// only in how the finished SQL and parameters are handed to the driver.
package conn

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bawdo/cteq/cte"
	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
	"github.com/bawdo/cteq/visitors"
)

// Dialect selects the SQL rendering rules and the database/sql driver.
type Dialect int

const (
	Postgres Dialect = iota
	MySQL
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// NewVisitor returns a fresh dialect visitor. Visitors carry parameter state,
// so each assembly gets its own.
func (d Dialect) NewVisitor() nodes.Visitor {
	switch d {
	case MySQL:
		return visitors.NewMySQLVisitor()
	case SQLite:
		return visitors.NewSQLiteVisitor()
	default:
		return visitors.NewPostgresVisitor()
	}
}

// DriverName returns the database/sql driver name registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return "pgx"
	}
}

// DB wraps a database/sql handle with the dialect used to render statements
// for it.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// NewDB wraps an open handle. The handle's driver must match the dialect;
// Open does both steps at once.
func NewDB(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect}
}

// Open opens a connection for the dialect's registered driver and wraps it.
// The caller imports the driver package for its side effect, the same way
// database/sql is normally used.
func Open(dialect Dialect, dsn string) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	return NewDB(db, dialect), nil
}

// Dialect returns the rendering dialect.
func (d *DB) Dialect() Dialect { return d.dialect }

// Unwrap returns the underlying handle for operations this package does not
// cover, such as schema setup in tests.
func (d *DB) Unwrap() *sql.DB { return d.db }

// Close closes the underlying handle.
func (d *DB) Close() error { return d.db.Close() }

// Executable is an assembled statement bound to a connection, ready to run.
type Executable struct {
	SQL    string
	Params []any

	db  *sql.DB
	row schema.Row
}

// Row returns the row shape of the statement's result set.
func (e *Executable) Row() schema.Row { return e.row }

// Query runs the statement and returns the raw rows.
func (e *Executable) Query(ctx context.Context) (*sql.Rows, error) {
	rows, err := e.db.QueryContext(ctx, e.SQL, e.Params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// QueryRow runs the statement expecting at most one row.
func (e *Executable) QueryRow(ctx context.Context) *sql.Row {
	return e.db.QueryRowContext(ctx, e.SQL, e.Params...)
}

// Exec runs the statement without reading a result set. Useful for CTEs whose
// consuming query is a data-modifying statement.
func (e *Executable) Exec(ctx context.Context) (sql.Result, error) {
	res, err := e.db.ExecContext(ctx, e.SQL, e.Params...)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	return res, nil
}

// WithCTE assembles a non-recursive WITH statement over this connection.
// An empty column name list renders no explicit column list.
func (d *DB) WithCTE(name string, columns []string, parts cte.Parts) (*Executable, error) {
	cols, err := bindColumns(columns, parts.Body.Row())
	if err != nil {
		return nil, err
	}
	def, err := cte.New(name, cols, parts)
	if err != nil {
		return nil, err
	}
	return d.executable(def), nil
}

// WithRecursive assembles a WITH RECURSIVE statement over this connection.
// An empty column name list renders no explicit column list.
func (d *DB) WithRecursive(name string, columns []string, parts cte.RecursiveParts) (*Executable, error) {
	cols, err := bindColumns(columns, parts.Seed.Row())
	if err != nil {
		return nil, err
	}
	def, err := cte.NewRecursive(name, cols, parts)
	if err != nil {
		return nil, err
	}
	return d.executable(def), nil
}

// Assemble renders a prebuilt definition for this connection's dialect.
func (d *DB) Assemble(def *cte.Definition) *Executable {
	return d.executable(def)
}

func (d *DB) executable(def *cte.Definition) *Executable {
	asm := def.Assemble(d.dialect.NewVisitor())
	return &Executable{SQL: asm.SQL, Params: asm.Params, db: d.db, row: asm.Row}
}

func bindColumns(names []string, row schema.Row) (cte.ColumnSet, error) {
	if len(names) == 0 {
		return cte.ColumnSet{}, nil
	}
	return cte.BindColumns(names, row)
}

// Load runs the statement and scans every row through fn. It drains and
// closes the rows, returning the first scan or iteration error.
func Load[T any](ctx context.Context, e *Executable, fn func(scan func(...any) error) (T, error)) ([]T, error) {
	rows, err := e.Query(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := fn(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
