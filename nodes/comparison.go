package nodes

// ComparisonOp identifies the binary comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
)

// ComparisonNode represents a binary comparison between two expressions.
type ComparisonNode struct {
	Combinable
	Left  Node
	Right Node
	Op    ComparisonOp
}

func (n *ComparisonNode) Accept(v Visitor) string { return v.VisitComparison(n) }

// NewComparisonNode creates a ComparisonNode with Combinable initialised.
func NewComparisonNode(left, right Node, op ComparisonOp) *ComparisonNode {
	n := &ComparisonNode{Left: left, Right: right, Op: op}
	n.self = n
	return n
}

// UnaryOp identifies the postfix unary predicate.
type UnaryOp int

const (
	OpIsNull UnaryOp = iota
	OpIsNotNull
)

// UnaryNode represents a postfix unary predicate (IS NULL, IS NOT NULL).
type UnaryNode struct {
	Combinable
	Expr Node
	Op   UnaryOp
}

func (n *UnaryNode) Accept(v Visitor) string { return v.VisitUnary(n) }

// InNode represents an IN (...) or NOT IN (...) predicate.
type InNode struct {
	Combinable
	Expr   Node
	Vals   []Node
	Negate bool
}

func (n *InNode) Accept(v Visitor) string { return v.VisitIn(n) }
