package managers

import (
	"github.com/bawdo/cteq/nodes"
)

// SelectManager provides a fluent API for building SELECT queries.
// A SelectManager implements nodes.Node, so it can be used directly as the
// seed, step, or consuming fragment of a common table expression.
type SelectManager struct {
	Core *nodes.SelectCore
}

// NewSelectManager creates a new SelectManager with the given table as FROM.
// If from is nil, the FROM clause is left unset.
func NewSelectManager(from nodes.Node) *SelectManager {
	return &SelectManager{
		Core: &nodes.SelectCore{From: from},
	}
}

// Select sets the projection list, replacing any existing projections.
// Pass column attributes, stars, literals, or any Node.
func (m *SelectManager) Select(projections ...nodes.Node) *SelectManager {
	m.Core.Projections = projections
	return m
}

// Project is an alias for Select (Ruby Arel uses "project").
func (m *SelectManager) Project(projections ...nodes.Node) *SelectManager {
	return m.Select(projections...)
}

// Distinct enables the DISTINCT modifier on the SELECT clause.
func (m *SelectManager) Distinct() *SelectManager {
	m.Core.Distinct = true
	return m
}

// Where appends one or more conditions to the WHERE clause.
// Multiple calls to Where are combined with AND at the visitor level.
func (m *SelectManager) Where(conditions ...nodes.Node) *SelectManager {
	m.Core.Wheres = append(m.Core.Wheres, conditions...)
	return m
}

// From sets or changes the FROM source.
func (m *SelectManager) From(table nodes.Node) *SelectManager {
	m.Core.From = table
	return m
}

// Join adds a join to the query and returns a JoinContext for specifying
// the ON condition. The default join type is InnerJoin.
func (m *SelectManager) Join(table nodes.Node, joinTypes ...nodes.JoinType) *JoinContext {
	jt := nodes.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	join := &nodes.JoinNode{
		Left:  m.Core.From,
		Right: table,
		Type:  jt,
	}
	m.Core.Joins = append(m.Core.Joins, join)
	return &JoinContext{manager: m, join: join}
}

// OuterJoin is a convenience for Join with LeftOuterJoin type.
func (m *SelectManager) OuterJoin(table nodes.Node) *JoinContext {
	return m.Join(table, nodes.LeftOuterJoin)
}

// CrossJoin adds a cross join (no ON clause).
func (m *SelectManager) CrossJoin(table nodes.Node) *SelectManager {
	join := &nodes.JoinNode{
		Left:  m.Core.From,
		Right: table,
		Type:  nodes.CrossJoin,
	}
	m.Core.Joins = append(m.Core.Joins, join)
	return m
}

// Group appends one or more expressions to the GROUP BY clause.
func (m *SelectManager) Group(columns ...nodes.Node) *SelectManager {
	m.Core.Groups = append(m.Core.Groups, columns...)
	return m
}

// Having appends one or more conditions to the HAVING clause.
// Multiple calls to Having are combined with AND at the visitor level.
func (m *SelectManager) Having(conditions ...nodes.Node) *SelectManager {
	m.Core.Havings = append(m.Core.Havings, conditions...)
	return m
}

// Order sets the ORDER BY clause. Pass OrderingNode values
// (e.g., table.Col("name").Asc()).
func (m *SelectManager) Order(orderings ...nodes.Node) *SelectManager {
	m.Core.Orders = append(m.Core.Orders, orderings...)
	return m
}

// Limit sets the LIMIT value.
func (m *SelectManager) Limit(n int) *SelectManager {
	m.Core.Limit = nodes.Literal(n)
	return m
}

// Offset sets the OFFSET value.
func (m *SelectManager) Offset(n int) *SelectManager {
	m.Core.Offset = nodes.Literal(n)
	return m
}

// Union creates a UNION set operation between this query and another.
func (m *SelectManager) Union(other *SelectManager) *nodes.SetOperationNode {
	return &nodes.SetOperationNode{Left: m.Core, Right: other.Core, Type: nodes.Union}
}

// UnionAll creates a UNION ALL set operation between this query and another.
func (m *SelectManager) UnionAll(other *SelectManager) *nodes.SetOperationNode {
	return &nodes.SetOperationNode{Left: m.Core, Right: other.Core, Type: nodes.UnionAll}
}

// ToSQL generates SQL with parameters.
// Returns SQL string, parameter values (if parameterised), and any error.
// Parameters are collected automatically when the visitor has parameterisation enabled.
func (m *SelectManager) ToSQL(v nodes.Visitor) (string, []any, error) {
	return toSQLParams(v, func(v nodes.Visitor) (string, error) {
		return m.Core.Accept(v), nil
	})
}

// Accept implements the Node interface so that a SelectManager can be
// used as a subquery or CTE fragment. It delegates to the underlying
// SelectCore.
func (m *SelectManager) Accept(v nodes.Visitor) string {
	return m.Core.Accept(v)
}

// As wraps the query's SelectCore in a TableAlias, enabling it to be
// used as a named subquery in FROM or JOIN clauses.
func (m *SelectManager) As(name string) *nodes.TableAlias {
	return &nodes.TableAlias{Relation: m.Core, AliasName: name}
}

// JoinContext guides ON-condition construction for a pending join.
type JoinContext struct {
	manager *SelectManager
	join    *nodes.JoinNode
}

// On sets the join condition and returns the SelectManager for chaining.
func (c *JoinContext) On(condition nodes.Node) *SelectManager {
	c.join.On = condition
	return c.manager
}
