package visitors

import (
	"fmt"

	"github.com/bawdo/cteq/internal/quoting"
)

// PostgresVisitor generates PostgreSQL-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column".
type PostgresVisitor struct {
	*baseVisitor
}

// NewPostgresVisitor creates a PostgresVisitor ready for use.
// Parameterized mode is enabled by default; values render as $1, $2, ...
func NewPostgresVisitor(opts ...Option) *PostgresVisitor {
	v := &PostgresVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.DoubleQuote,
		placeholder:  func(i int) string { return fmt.Sprintf("$%d", i) },
		parameterize: true,
	}
	v.applyOptions(opts)
	return v
}
