package cte

import (
	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
)

// fragment pairs a query expression with the row shape it projects. Wrapping
// never alters the expression's rendering; the row shape exists purely so
// definitions can be validated before any SQL is produced.
type fragment struct {
	expr nodes.Node
	row  schema.Row
}

// Expr returns the wrapped expression.
func (f fragment) Expr() nodes.Node { return f.expr }

// Row returns the row shape the fragment declares.
func (f fragment) Row() schema.Row { return f.row }

// The four roles are distinct types, so a seed cannot be passed where a step
// belongs: mixing them up is a compile error rather than a runtime check.

// SeedFragment is the base-case query of a recursive CTE.
type SeedFragment struct{ fragment }

// StepFragment is the self-referencing query of a recursive CTE, combined
// with the seed via UNION ALL.
type StepFragment struct{ fragment }

// FinalFragment is the consuming query placed after the WITH clause.
type FinalFragment struct{ fragment }

// BodyFragment is the defining query of a non-recursive CTE.
type BodyFragment struct{ fragment }

// Seed wraps an expression as the base case of a recursive CTE.
func Seed(expr nodes.Node, row schema.Row) SeedFragment {
	return SeedFragment{fragment{expr: expr, row: row}}
}

// Step wraps an expression as the recursive term of a recursive CTE.
func Step(expr nodes.Node, row schema.Row) StepFragment {
	return StepFragment{fragment{expr: expr, row: row}}
}

// Final wraps an expression as the query consuming the named CTE.
func Final(expr nodes.Node, row schema.Row) FinalFragment {
	return FinalFragment{fragment{expr: expr, row: row}}
}

// Body wraps an expression as the defining query of a non-recursive CTE.
func Body(expr nodes.Node, row schema.Row) BodyFragment {
	return BodyFragment{fragment{expr: expr, row: row}}
}

// Raw-SQL variants for fragments that reference the CTE's own name, which no
// table object exists for yet. Binds are positional and parameterized.

// SeedSQL wraps a raw SQL seed query.
func SeedSQL(raw string, row schema.Row, binds ...any) SeedFragment {
	return Seed(nodes.NewBoundSqlLiteral(raw, binds...), row)
}

// StepSQL wraps a raw SQL step query.
func StepSQL(raw string, row schema.Row, binds ...any) StepFragment {
	return Step(nodes.NewBoundSqlLiteral(raw, binds...), row)
}

// FinalSQL wraps a raw SQL consuming query.
func FinalSQL(raw string, row schema.Row, binds ...any) FinalFragment {
	return Final(nodes.NewBoundSqlLiteral(raw, binds...), row)
}

// BodySQL wraps a raw SQL defining query.
func BodySQL(raw string, row schema.Row, binds ...any) BodyFragment {
	return Body(nodes.NewBoundSqlLiteral(raw, binds...), row)
}
