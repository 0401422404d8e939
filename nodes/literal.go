package nodes

// LiteralNode wraps a raw Go value (string, int, float, bool, etc.) as an AST node.
type LiteralNode struct {
	Predications
	Combinable
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Table *Table // nil for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}

// SqlLiteral represents a raw SQL fragment injected verbatim into the query.
// Seed and step queries of a recursive CTE are often written this way, since
// the step references the CTE's own name before any relation of that name
// exists in the schema.
//
// SECURITY: The Raw field is rendered directly into SQL output without escaping
// or parameterization. Never pass user-controlled input to NewSqlLiteral or
// NewBoundSqlLiteral's raw parameter. Use parameterized queries (BindParam)
// for user-provided values.
type SqlLiteral struct {
	Predications
	Combinable
	Raw   string
	Binds []any // optional bind parameters for parameterized mode
}

func NewSqlLiteral(raw string) *SqlLiteral {
	n := &SqlLiteral{Raw: raw}
	n.Predications.self = n
	n.Combinable.self = n
	return n
}

func (n *SqlLiteral) Accept(v Visitor) string { return v.VisitSqlLiteral(n) }

// NewBoundSqlLiteral creates a SqlLiteral with bind parameters.
// In parameterized mode, the binds are appended to the parameter list at the
// point the fragment is emitted, keeping placeholder positions aligned.
//
// SECURITY: Only the binds are parameterized. The raw string is injected
// verbatim into SQL output and must not contain user-controlled input.
func NewBoundSqlLiteral(raw string, binds ...any) *SqlLiteral {
	n := NewSqlLiteral(raw)
	n.Binds = binds
	return n
}

// BindParamNode represents an explicit bind parameter placeholder.
// Its Value is always emitted as a bind parameter in parameterized mode,
// or rendered as a literal value in non-parameterized mode.
type BindParamNode struct {
	Value any
}

func (n *BindParamNode) Accept(v Visitor) string { return v.VisitBindParam(n) }

// NewBindParam creates a BindParamNode.
func NewBindParam(value any) *BindParamNode {
	return &BindParamNode{Value: value}
}
