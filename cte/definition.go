package cte

import (
	"fmt"

	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
)

// Parts bundles the fragments of a non-recursive CTE: the defining query and
// the query consuming it.
type Parts struct {
	Body  BodyFragment
	Final FinalFragment
}

// NewParts bundles the defining and consuming queries together.
func NewParts(body BodyFragment, final FinalFragment) Parts {
	return Parts{Body: body, Final: final}
}

// RecursiveParts bundles the fragments of a recursive CTE: seed, step, and
// the query consuming the CTE.
type RecursiveParts struct {
	Seed  SeedFragment
	Step  StepFragment
	Final FinalFragment
}

// NewRecursiveParts bundles the seed, step, and consuming queries together.
func NewRecursiveParts(seed SeedFragment, step StepFragment, final FinalFragment) RecursiveParts {
	return RecursiveParts{Seed: seed, Step: step, Final: final}
}

// Definition is a validated CTE: name, bound columns, and fragments that are
// known to agree on a row shape. Construct one with New or NewRecursive;
// after construction it is immutable and can be assembled any number of
// times with identical output.
type Definition struct {
	name      string
	columns   ColumnSet
	recursive bool
	query     nodes.Node // defining query (non-recursive)
	seed      nodes.Node // base case (recursive)
	step      nodes.Node // recursive term (recursive)
	final     nodes.Node // consuming query
	row       schema.Row // row shape of the consuming query
}

// New validates and builds a non-recursive CTE definition.
//
// The exposed column count must match the defining query's arity, unless the
// column set is empty, in which case no explicit column list is rendered and
// the backend derives names from the defining query.
func New(name string, columns ColumnSet, parts Parts) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty CTE name", ErrInvalidIdentifier)
	}
	if columns.Arity() > 0 && columns.Arity() != parts.Body.Row().Arity() {
		return nil, fmt.Errorf("%w: %d columns for %q, body projects %d",
			ErrArityMismatch, columns.Arity(), name, parts.Body.Row().Arity())
	}
	return &Definition{
		name:    name,
		columns: columns,
		query:   parts.Body.Expr(),
		final:   parts.Final.Expr(),
		row:     parts.Final.Row(),
	}, nil
}

// NewRecursive validates and builds a recursive CTE definition.
//
// Seed and step must project identical row shapes; the two are combined with
// UNION ALL. Termination is not analyzed here: a non-terminating step is
// surfaced by the backend's depth or resource limits at execution time.
func NewRecursive(name string, columns ColumnSet, parts RecursiveParts) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty CTE name", ErrInvalidIdentifier)
	}
	if !parts.Seed.Row().Equal(parts.Step.Row()) {
		return nil, fmt.Errorf("%w: seed %v, step %v for %q",
			ErrRowTypeMismatch, parts.Seed.Row(), parts.Step.Row(), name)
	}
	if columns.Arity() > 0 && columns.Arity() != parts.Seed.Row().Arity() {
		return nil, fmt.Errorf("%w: %d columns for %q, seed projects %d",
			ErrArityMismatch, columns.Arity(), name, parts.Seed.Row().Arity())
	}
	return &Definition{
		name:      name,
		columns:   columns,
		recursive: true,
		seed:      parts.Seed.Expr(),
		step:      parts.Step.Expr(),
		final:     parts.Final.Expr(),
		row:       parts.Final.Row(),
	}, nil
}

// Name returns the CTE's name.
func (d *Definition) Name() string { return d.name }

// Recursive reports whether the definition renders WITH RECURSIVE.
func (d *Definition) Recursive() bool { return d.recursive }

// Columns returns the bound column set.
func (d *Definition) Columns() ColumnSet { return d.columns }

// Row returns the row shape of the consuming query, which is the row shape
// of the assembled statement.
func (d *Definition) Row() schema.Row { return d.row }
