// Package quoting provides shared identifier quoting utilities.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes a string literal for SQL by doubling single quotes
// and escaping backslashes (for MySQL compatibility).
//
// SECURITY: This escaping is intended for non-parameterized mode only.
// Production code should use parameterized queries (the visitors' default
// mode) for all user-provided values.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}
