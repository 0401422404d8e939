// Package schema holds the column metadata that common table expressions are
// validated against: column types, named column descriptors, row shapes, and
// table definitions. It is the declaration-time source the cte package
// consumes; it does not parse live database catalogs.
package schema

import "github.com/bawdo/cteq/nodes"

// Type is a coarse SQL column type descriptor. Row-shape compatibility
// between the fragments of a recursive CTE is checked at this granularity.
type Type int

const (
	Integer Type = iota
	BigInt
	Float
	Text
	Boolean
	Timestamp
	Bytes
)

// String returns the descriptor's display name.
func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case BigInt:
		return "bigint"
	case Float:
		return "float"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	case Timestamp:
		return "timestamp"
	case Bytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Column pairs a column name with its type descriptor.
type Column struct {
	Name string
	Type Type
}

// Col creates a Column descriptor.
func Col(name string, t Type) Column {
	return Column{Name: name, Type: t}
}

// Row is the ordered sequence of column types a query fragment projects.
type Row []Type

// RowOf builds a Row from the given types.
func RowOf(types ...Type) Row {
	return Row(types)
}

// Arity returns the number of columns in the row.
func (r Row) Arity() int { return len(r) }

// Equal reports whether two rows have the same arity and the same type at
// every position.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i, t := range r {
		if other[i] != t {
			return false
		}
	}
	return true
}

// Table is a declaration-time table definition: a name plus its columns in
// declaration order.
type Table struct {
	Name    string
	Columns []Column
}

// NewTable creates a table definition.
func NewTable(name string, cols ...Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// Row returns the table's row shape in declaration order.
func (t *Table) Row() Row {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = c.Type
	}
	return row
}

// Names returns the column names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Relation returns an AST table reference for query building.
func (t *Table) Relation() *nodes.Table {
	return nodes.NewTable(t.Name)
}
