package cte

import (
	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
)

// Assembled is a rendered WITH statement: SQL text, bound parameters in
// placeholder order, and the row shape of the consuming query. It holds no
// connection state; the conn package turns one into an executable query.
type Assembled struct {
	SQL    string
	Params []any
	Row    schema.Row
}

// Assemble renders the definition plus its consuming query through the given
// dialect visitor.
//
// Rendering is deterministic and side-effect-free: the visitor's parameter
// state is reset first, so assembling the same definition twice yields
// byte-identical SQL and identical parameter order. Parameters from the
// seed, step, or body and from the consumer are collected in textual
// emission order, matching their placeholder positions. Exactly one WITH
// clause is produced per call.
func (d *Definition) Assemble(v nodes.Visitor) *Assembled {
	p, _ := v.(nodes.Parameterizer)
	if p != nil {
		p.Reset()
	}

	with := &nodes.WithNode{
		CTE: &nodes.CTENode{
			Name:      d.name,
			Columns:   d.columns.Names(),
			Recursive: d.recursive,
			Query:     d.query,
			Seed:      d.seed,
			Step:      d.step,
		},
		Body: d.final,
	}
	sql := with.Accept(v)

	var params []any
	if p != nil {
		params = p.Params()
	}
	return &Assembled{SQL: sql, Params: params, Row: d.row}
}
