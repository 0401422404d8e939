// Package visitors provides SQL dialect generators that walk the AST.
package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/cteq/internal/quoting"
	"github.com/bawdo/cteq/nodes"
)

// Operator SQL strings for InfixOp values.
var infixOpSQL = [...]string{
	nodes.OpPlus:     "+",
	nodes.OpMinus:    "-",
	nodes.OpMultiply: "*",
	nodes.OpDivide:   "/",
	nodes.OpConcat:   "||",
}

// Operator SQL strings for ComparisonOp values.
var comparisonOpSQL = [...]string{
	nodes.OpEq:      "=",
	nodes.OpNotEq:   "!=",
	nodes.OpGt:      ">",
	nodes.OpGtEq:    ">=",
	nodes.OpLt:      "<",
	nodes.OpLtEq:    "<=",
	nodes.OpLike:    "LIKE",
	nodes.OpNotLike: "NOT LIKE",
}

// SQL keywords for JoinType values.
var joinTypeSQL = [...]string{
	nodes.InnerJoin:     "INNER JOIN",
	nodes.LeftOuterJoin: "LEFT OUTER JOIN",
	nodes.CrossJoin:     "CROSS JOIN",
}

// SQL keywords for SetOpType values.
var setOpTypeSQL = [...]string{
	nodes.Union:     "UNION",
	nodes.UnionAll:  "UNION ALL",
	nodes.Intersect: "INTERSECT",
	nodes.Except:    "EXCEPT",
}

// Aggregate function SQL names.
var aggregateFuncSQL = [...]string{
	nodes.AggCount: "COUNT",
	nodes.AggSum:   "SUM",
	nodes.AggAvg:   "AVG",
	nodes.AggMin:   "MIN",
	nodes.AggMax:   "MAX",
}

// needsParens returns true if the node should be wrapped in parentheses
// when used as a child of an infix expression.
func needsParens(n nodes.Node) bool {
	_, ok := n.(*nodes.InfixNode)
	return ok
}

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithoutParams disables parameterized query mode.
//
// ⚠️ WARNING: Disables SQL injection protection. Only use for debugging or when
// you're certain all values are trusted. Production code should NEVER use this option.
//
// When disabled, literal values are interpolated directly into the SQL string
// with basic escaping only.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// baseVisitor implements the shared SQL generation logic used by all dialects.
// Dialect-specific visitors embed *baseVisitor and set the outer field to
// themselves, enabling correct virtual dispatch through the Visitor interface.
type baseVisitor struct {
	// outer is the concrete dialect visitor. All recursive Accept calls
	// go through outer so that dialect overrides are respected.
	outer nodes.Visitor

	// quoteIdent quotes a SQL identifier (table name, column name).
	quoteIdent func(string) string

	// parameterize enables bind-parameter mode.
	parameterize bool

	// params accumulates bind parameter values during SQL generation.
	params []any

	// paramIndex tracks the next parameter number (1-based).
	paramIndex int

	// placeholder returns the bind placeholder for a given parameter index.
	// PostgreSQL uses $1, $2; MySQL/SQLite use ?.
	placeholder func(int) string
}

// applyOptions applies functional options to the baseVisitor.
func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the collected bind parameters from the last SQL generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Reset clears collected parameters for reuse.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitTableAlias(n *nodes.TableAlias) string {
	if tbl, ok := n.Relation.(*nodes.Table); ok {
		return b.quoteIdent(tbl.Name) + " AS " + b.quoteIdent(n.AliasName)
	}
	return "(" + n.Relation.Accept(b.outer) + ") AS " + b.quoteIdent(n.AliasName)
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	return b.quoteIdent(nodes.RelationName(n.Relation)) + "." + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) literalToSQL(val any) string {
	// nil always renders as NULL keyword, never parameterized.
	if val == nil {
		return "NULL"
	}

	// In parameterize mode, emit a placeholder and collect the value.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, val)
		return b.placeholder(b.paramIndex)
	}

	switch v := val.(type) {
	case string:
		return "'" + quoting.EscapeString(v) + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Table != nil {
		return b.quoteIdent(n.Table.Name) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	if b.parameterize && len(n.Binds) > 0 {
		b.params = append(b.params, n.Binds...)
		for range n.Binds {
			b.paramIndex++
		}
	}
	return n.Raw
}

func (b *baseVisitor) VisitBindParam(n *nodes.BindParamNode) string {
	// Always parameterize if in param mode, otherwise render as literal.
	if b.parameterize {
		b.paramIndex++
		b.params = append(b.params, n.Value)
		return b.placeholder(b.paramIndex)
	}
	return b.literalToSQL(n.Value)
}

func (b *baseVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	left := n.Left.Accept(b.outer)
	right := n.Right.Accept(b.outer)
	return left + " " + comparisonOpSQL[n.Op] + " " + right
}

func (b *baseVisitor) VisitUnary(n *nodes.UnaryNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Op == nodes.OpIsNotNull {
		return expr + " IS NOT NULL"
	}
	return expr + " IS NULL"
}

func (b *baseVisitor) VisitAnd(n *nodes.AndNode) string {
	return n.Left.Accept(b.outer) + " AND " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitOr(n *nodes.OrNode) string {
	return n.Left.Accept(b.outer) + " OR " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitNot(n *nodes.NotNode) string {
	return "NOT (" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitIn(n *nodes.InNode) string {
	expr := n.Expr.Accept(b.outer)
	vals := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		vals[i] = v.Accept(b.outer)
	}
	keyword := "IN"
	if n.Negate {
		keyword = "NOT IN"
	}
	return expr + " " + keyword + " (" + strings.Join(vals, ", ") + ")"
}

func (b *baseVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitInfix(n *nodes.InfixNode) string {
	left := n.Left.Accept(b.outer)
	if needsParens(n.Left) {
		left = "(" + left + ")"
	}
	right := n.Right.Accept(b.outer)
	if needsParens(n.Right) {
		right = "(" + right + ")"
	}
	return left + " " + infixOpSQL[n.Op] + " " + right
}

func (b *baseVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	var sb strings.Builder
	sb.WriteString(aggregateFuncSQL[n.Func])
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if n.Expr == nil {
		sb.WriteString("*")
	} else {
		sb.WriteString(n.Expr.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitJoin(n *nodes.JoinNode) string {
	rightSQL := n.Right.Accept(b.outer)

	// Wrap subqueries in parentheses.
	if _, ok := n.Right.(*nodes.SelectCore); ok {
		rightSQL = "(" + rightSQL + ")"
	}

	var sb strings.Builder
	sb.WriteString(joinTypeSQL[n.Type])
	sb.WriteString(" ")
	sb.WriteString(rightSQL)

	if n.On != nil {
		sb.WriteString(" ON ")
		sb.WriteString(n.On.Accept(b.outer))
	}

	return sb.String()
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Direction == nodes.Desc {
		return expr + " DESC"
	}
	return expr + " ASC"
}

func (b *baseVisitor) VisitAlias(n *nodes.AliasNode) string {
	return n.Expr.Accept(b.outer) + " AS " + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	b.writeProjections(&sb, n.Projections)
	if n.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(n.From.Accept(b.outer))
	}
	for _, join := range n.Joins {
		sb.WriteString(" ")
		sb.WriteString(join.Accept(b.outer))
	}
	b.writeClause(&sb, " WHERE ", n.Wheres, " AND ")
	b.writeClause(&sb, " GROUP BY ", n.Groups, ", ")
	b.writeClause(&sb, " HAVING ", n.Havings, " AND ")
	b.writeClause(&sb, " ORDER BY ", n.Orders, ", ")
	b.writeNodeClause(&sb, " LIMIT ", n.Limit)
	b.writeNodeClause(&sb, " OFFSET ", n.Offset)

	return sb.String()
}

func (b *baseVisitor) writeProjections(sb *strings.Builder, projections []nodes.Node) {
	if len(projections) == 0 {
		sb.WriteString("*")
		return
	}
	for i, p := range projections {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Accept(b.outer))
	}
}

// writeClause writes "keyword item1 sep item2 sep ..." if items is non-empty.
func (b *baseVisitor) writeClause(sb *strings.Builder, keyword string, items []nodes.Node, sep string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(item.Accept(b.outer))
	}
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (b *baseVisitor) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n != nil {
		sb.WriteString(keyword)
		sb.WriteString(n.Accept(b.outer))
	}
}

func (b *baseVisitor) VisitInsertStatement(n *nodes.InsertStatement) string {
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(n.Into.Accept(b.outer))

	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = b.quoteIdent(c.(*nodes.Attribute).Name)
		}
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	// INSERT FROM SELECT
	if n.Select != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Select.Accept(b.outer))
	} else if len(n.Values) > 0 {
		sb.WriteString(" VALUES ")
		rows := make([]string, len(n.Values))
		for i, row := range n.Values {
			vals := make([]string, len(row))
			for j, v := range row {
				vals[j] = v.Accept(b.outer)
			}
			rows[i] = "(" + strings.Join(vals, ", ") + ")"
		}
		sb.WriteString(strings.Join(rows, ", "))
	}

	if len(n.Returning) > 0 {
		sb.WriteString(" RETURNING ")
		rets := make([]string, len(n.Returning))
		for i, r := range n.Returning {
			rets[i] = r.Accept(b.outer)
		}
		sb.WriteString(strings.Join(rets, ", "))
	}

	return sb.String()
}

func (b *baseVisitor) VisitSetOperation(n *nodes.SetOperationNode) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.Left.Accept(b.outer))
	sb.WriteString(") ")
	sb.WriteString(setOpTypeSQL[n.Type])
	sb.WriteString(" (")
	sb.WriteString(n.Right.Accept(b.outer))
	sb.WriteString(")")
	return sb.String()
}

// VisitCTE renders one named CTE: name, optional column list, and the
// defining query. Recursive CTEs render their seed and step joined with
// UNION ALL, without extra parentheses, so placeholder positions match the
// textual emission order exactly.
func (b *baseVisitor) VisitCTE(n *nodes.CTENode) string {
	var sb strings.Builder
	sb.WriteString(b.quoteIdent(n.Name))
	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		quoted := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			quoted[i] = b.quoteIdent(c)
		}
		sb.WriteString(strings.Join(quoted, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" AS (")
	if n.Recursive {
		sb.WriteString(n.Seed.Accept(b.outer))
		sb.WriteString(" UNION ALL ")
		sb.WriteString(n.Step.Accept(b.outer))
	} else {
		sb.WriteString(n.Query.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

// VisitWith renders a complete WITH statement: header, the CTE definition,
// then the consuming body verbatim after the closing parenthesis.
func (b *baseVisitor) VisitWith(n *nodes.WithNode) string {
	var sb strings.Builder
	if n.CTE.Recursive {
		sb.WriteString("WITH RECURSIVE ")
	} else {
		sb.WriteString("WITH ")
	}
	sb.WriteString(n.CTE.Accept(b.outer))
	sb.WriteString(" ")
	sb.WriteString(n.Body.Accept(b.outer))
	return sb.String()
}
