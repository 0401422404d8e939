package nodes

// Predications provides comparison methods to types that embed it.
// The self field must be set to the embedding node so that comparisons
// reference the correct left-hand side.
type Predications struct {
	self Node
}

// Eq creates an equality comparison: self = val.
func (p Predications) Eq(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpEq)
}

// NotEq creates an inequality comparison: self != val.
func (p Predications) NotEq(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpNotEq)
}

// Gt creates a greater-than comparison: self > val.
func (p Predications) Gt(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpGt)
}

// GtEq creates a greater-than-or-equal comparison: self >= val.
func (p Predications) GtEq(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpGtEq)
}

// Lt creates a less-than comparison: self < val.
func (p Predications) Lt(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpLt)
}

// LtEq creates a less-than-or-equal comparison: self <= val.
func (p Predications) LtEq(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpLtEq)
}

// Like creates a LIKE comparison: self LIKE val.
func (p Predications) Like(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpLike)
}

// NotLike creates a NOT LIKE comparison: self NOT LIKE val.
func (p Predications) NotLike(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpNotLike)
}

// In creates an IN predicate: self IN (vals...).
func (p Predications) In(vals ...any) *InNode {
	wrapped := make([]Node, len(vals))
	for i, v := range vals {
		wrapped[i] = Literal(v)
	}
	n := &InNode{Expr: p.self, Vals: wrapped}
	n.self = n
	return n
}

// NotIn creates a NOT IN predicate: self NOT IN (vals...).
func (p Predications) NotIn(vals ...any) *InNode {
	wrapped := make([]Node, len(vals))
	for i, v := range vals {
		wrapped[i] = Literal(v)
	}
	n := &InNode{Expr: p.self, Vals: wrapped, Negate: true}
	n.self = n
	return n
}

// IsNull creates an IS NULL predicate.
func (p Predications) IsNull() *UnaryNode {
	n := &UnaryNode{Expr: p.self, Op: OpIsNull}
	n.self = n
	return n
}

// IsNotNull creates an IS NOT NULL predicate.
func (p Predications) IsNotNull() *UnaryNode {
	n := &UnaryNode{Expr: p.self, Op: OpIsNotNull}
	n.self = n
	return n
}

// As creates an AliasNode wrapping self with the given alias name.
func (p Predications) As(name string) *AliasNode {
	return NewAliasNode(p.self, name)
}

// Asc creates an ascending ordering node.
func (p Predications) Asc() *OrderingNode {
	n := &OrderingNode{Expr: p.self, Direction: Asc}
	n.self = n
	return n
}

// Desc creates a descending ordering node.
func (p Predications) Desc() *OrderingNode {
	n := &OrderingNode{Expr: p.self, Direction: Desc}
	n.self = n
	return n
}
