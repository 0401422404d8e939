package nodes

// SetOpType represents the type of set operation.
type SetOpType int

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	Except
)

// String returns the SQL keyword for this set operation type.
func (t SetOpType) String() string {
	switch t {
	case Union:
		return "UNION"
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// SetOperationNode represents a set operation between two queries.
type SetOperationNode struct {
	Left  Node
	Right Node
	Type  SetOpType
}

func (n *SetOperationNode) Accept(v Visitor) string { return v.VisitSetOperation(n) }

// CTENode represents one named common table expression: the name, the
// optional exposed column list, and the defining query.
//
// A non-recursive CTE sets Query. A recursive CTE sets Seed and Step
// instead; they are always rendered joined by UNION ALL so the step runs
// once per newly produced row (duplicate suppression, if wanted, belongs
// in the consuming query).
type CTENode struct {
	Name      string
	Columns   []string // optional exposed column list; empty omits the list
	Recursive bool
	Query     Node // defining query (non-recursive)
	Seed      Node // base-case query (recursive)
	Step      Node // self-referencing query (recursive)
}

func (n *CTENode) Accept(v Visitor) string { return v.VisitCTE(n) }

// WithNode represents a complete WITH statement: a single CTE definition
// followed by the consuming query that selects from it.
type WithNode struct {
	CTE  *CTENode
	Body Node // consuming query, placed after the WITH clause
}

func (n *WithNode) Accept(v Visitor) string { return v.VisitWith(n) }
