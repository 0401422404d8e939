// Package cte composes WITH and WITH RECURSIVE query blocks on top of the
// AST query builder: it binds exposed column names to typed column
// descriptors, validates that the cooperating query fragments agree on a row
// shape, and assembles the complete statement for either execution path.
package cte

import (
	"fmt"

	"github.com/bawdo/cteq/schema"
)

// ColumnSet is an ordered, immutable binding of exposed column names to type
// descriptors. The zero value is the empty set, which renders no explicit
// column list and skips arity validation (the backend then derives column
// names from the defining query).
type ColumnSet struct {
	cols []schema.Column
}

// BindColumns pairs an ordered name list with the row shape those names
// expose. The name count must equal the row's arity, names must be non-empty,
// and no name may repeat.
func BindColumns(names []string, row schema.Row) (ColumnSet, error) {
	if len(names) != row.Arity() {
		return ColumnSet{}, fmt.Errorf("%w: %d names for %d columns", ErrArityMismatch, len(names), row.Arity())
	}
	seen := make(map[string]struct{}, len(names))
	cols := make([]schema.Column, len(names))
	for i, name := range names {
		if name == "" {
			return ColumnSet{}, fmt.Errorf("%w: empty column name at position %d", ErrInvalidIdentifier, i)
		}
		if _, dup := seen[name]; dup {
			return ColumnSet{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
		cols[i] = schema.Column{Name: name, Type: row[i]}
	}
	return ColumnSet{cols: cols}, nil
}

// TableColumns derives a ColumnSet from a full table definition, preserving
// declaration order. Used when a CTE re-exposes every column of an existing
// table; it cannot fail because the definition already pairs each name with
// its type.
func TableColumns(t *schema.Table) ColumnSet {
	cols := make([]schema.Column, len(t.Columns))
	copy(cols, t.Columns)
	return ColumnSet{cols: cols}
}

// Arity returns the number of bound columns.
func (c ColumnSet) Arity() int { return len(c.cols) }

// Names returns the exposed column names in bound order.
func (c ColumnSet) Names() []string {
	names := make([]string, len(c.cols))
	for i, col := range c.cols {
		names[i] = col.Name
	}
	return names
}

// Row returns the bound type descriptors in column order.
func (c ColumnSet) Row() schema.Row {
	row := make(schema.Row, len(c.cols))
	for i, col := range c.cols {
		row[i] = col.Type
	}
	return row
}
