package visitors

import (
	"github.com/bawdo/cteq/internal/quoting"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Identifiers are quoted with backticks: `table`.`column`.
// WITH RECURSIVE requires MySQL 8.0 or later; older servers reject the
// statement at execution time.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
// Parameterized mode is enabled by default for SQL injection protection.
// Pass WithoutParams() to disable (not recommended for production).
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:        v,
		quoteIdent:   quoting.Backtick,
		placeholder:  func(_ int) string { return "?" },
		parameterize: true,
	}
	v.applyOptions(opts)
	return v
}
