package nodes

// Attribute represents a column reference bound to a table or table alias.
type Attribute struct {
	Predications
	Arithmetics
	Combinable
	Name     string
	Relation Node // *Table or *TableAlias
}

// NewAttribute creates an Attribute with Predications, Arithmetics, and
// Combinable properly initialized to reference the new Attribute as self.
func NewAttribute(relation Node, name string) *Attribute {
	a := &Attribute{Name: name, Relation: relation}
	a.Predications.self = a
	a.Arithmetics.self = a
	a.Combinable.self = a
	return a
}

func (a *Attribute) Accept(v Visitor) string { return v.VisitAttribute(a) }
