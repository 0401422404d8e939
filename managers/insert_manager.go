package managers

import (
	"github.com/bawdo/cteq/nodes"
)

// InsertManager provides a fluent API for building INSERT statements.
// Tests and examples use it to seed the base tables recursive queries
// traverse.
type InsertManager struct {
	Statement *nodes.InsertStatement
}

// NewInsertManager creates a new InsertManager targeting the given table.
func NewInsertManager(into nodes.Node) *InsertManager {
	return &InsertManager{
		Statement: &nodes.InsertStatement{Into: into},
	}
}

// Columns sets the column list for the INSERT statement.
func (m *InsertManager) Columns(cols ...nodes.Node) *InsertManager {
	m.Statement.Columns = cols
	return m
}

// Values appends a row of values to the INSERT statement.
// Each call to Values adds one row. Pass raw Go values; they are
// wrapped with nodes.Literal automatically.
func (m *InsertManager) Values(vals ...any) *InsertManager {
	row := make([]nodes.Node, len(vals))
	for i, v := range vals {
		row[i] = nodes.Literal(v)
	}
	m.Statement.Values = append(m.Statement.Values, row)
	return m
}

// FromSelect sets a SELECT subquery as the source of rows.
// Mutually exclusive with Values: if Select is set, Values are ignored
// by the visitor.
func (m *InsertManager) FromSelect(sel *SelectManager) *InsertManager {
	m.Statement.Select = sel
	return m
}

// Returning sets the RETURNING clause columns.
func (m *InsertManager) Returning(cols ...nodes.Node) *InsertManager {
	m.Statement.Returning = cols
	return m
}

// ToSQL generates SQL with parameters.
func (m *InsertManager) ToSQL(v nodes.Visitor) (string, []any, error) {
	return toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Statement.Accept(v), nil
	})
}

// Accept implements the Node interface.
func (m *InsertManager) Accept(v nodes.Visitor) string {
	return m.Statement.Accept(v)
}
