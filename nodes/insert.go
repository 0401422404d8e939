package nodes

// InsertStatement represents INSERT INTO ... VALUES / SELECT.
type InsertStatement struct {
	Into      Node     // *Table
	Columns   []Node   // column list (*Attribute values)
	Values    [][]Node // rows of values (multi-row)
	Select    Node     // for INSERT FROM SELECT (mutually exclusive with Values)
	Returning []Node   // RETURNING columns
}

func (n *InsertStatement) Accept(v Visitor) string { return v.VisitInsertStatement(n) }
