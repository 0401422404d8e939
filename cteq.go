// Package cteq builds and executes WITH and WITH RECURSIVE queries on top of
// a fluent SQL query builder.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/cteq/cte (CTE definition and assembly)
//   - github.com/bawdo/cteq/conn (execution adapters)
//   - github.com/bawdo/cteq/schema (row and column descriptors)
//   - github.com/bawdo/cteq/managers (query builders)
//   - github.com/bawdo/cteq/nodes (AST nodes)
//   - github.com/bawdo/cteq/visitors (SQL generation)
package cteq

import (
	"github.com/bawdo/cteq/cte"
	"github.com/bawdo/cteq/managers"
	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
	"github.com/bawdo/cteq/visitors"
)

// --- CTE Types ---

// Definition is a validated CTE ready to assemble.
type Definition = cte.Definition

// ColumnSet binds exposed column names to type descriptors.
type ColumnSet = cte.ColumnSet

// Parts holds the fragments of a non-recursive CTE.
type Parts = cte.Parts

// RecursiveParts holds the fragments of a recursive CTE.
type RecursiveParts = cte.RecursiveParts

// --- CTE Constructors ---

// NewCTE validates and builds a non-recursive CTE definition.
func NewCTE(name string, columns cte.ColumnSet, parts cte.Parts) (*cte.Definition, error) {
	return cte.New(name, columns, parts)
}

// NewRecursiveCTE validates and builds a recursive CTE definition.
func NewRecursiveCTE(name string, columns cte.ColumnSet, parts cte.RecursiveParts) (*cte.Definition, error) {
	return cte.NewRecursive(name, columns, parts)
}

// BindColumns pairs an ordered name list with the row shape it exposes.
func BindColumns(names []string, row schema.Row) (cte.ColumnSet, error) {
	return cte.BindColumns(names, row)
}

// Seed wraps an expression as the base case of a recursive CTE.
func Seed(expr nodes.Node, row schema.Row) cte.SeedFragment {
	return cte.Seed(expr, row)
}

// Step wraps an expression as the recursive term of a recursive CTE.
func Step(expr nodes.Node, row schema.Row) cte.StepFragment {
	return cte.Step(expr, row)
}

// Final wraps an expression as the query consuming the named CTE.
func Final(expr nodes.Node, row schema.Row) cte.FinalFragment {
	return cte.Final(expr, row)
}

// Body wraps an expression as the defining query of a non-recursive CTE.
func Body(expr nodes.Node, row schema.Row) cte.BodyFragment {
	return cte.Body(expr, row)
}

// --- Schema Types ---

// Row is an ordered list of column type descriptors.
type Row = schema.Row

// Column pairs a name with a type descriptor.
type Column = schema.Column

// RowOf builds a row shape from type descriptors.
func RowOf(types ...schema.Type) schema.Row {
	return schema.RowOf(types...)
}

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT queries.
type InsertManager = managers.InsertManager

// --- Manager Constructors ---

// NewSelect creates a new SelectManager with the given table as FROM.
func NewSelect(from nodes.Node) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager for inserting into the given table.
func NewInsert(into nodes.Node) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// --- Core Node Types ---

// Table represents a SQL table reference.
type Table = nodes.Table

// Attribute represents a column reference (e.g., table.column).
type Attribute = nodes.Attribute

// Node is the base interface all AST nodes implement.
type Node = nodes.Node

// --- Common Node Constructors ---

// NewTable creates a new table reference.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal creates a SQL literal node (e.g., numbers, strings).
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// BindParam creates a parameterised placeholder (e.g., $1, ?).
func BindParam(value any) *nodes.BindParamNode {
	return nodes.NewBindParam(value)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.StarNode {
	return nodes.Star()
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate.
func Count(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Count(expr)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Max(expr)
}

// --- Visitor Types ---

// SQLiteVisitor generates SQLite-compatible SQL.
type SQLiteVisitor = visitors.SQLiteVisitor

// PostgresVisitor generates PostgreSQL-compatible SQL.
type PostgresVisitor = visitors.PostgresVisitor

// MySQLVisitor generates MySQL-compatible SQL.
type MySQLVisitor = visitors.MySQLVisitor

// --- Visitor Constructors ---

// NewSQLiteVisitor creates a new SQLite visitor.
func NewSQLiteVisitor(opts ...visitors.Option) *visitors.SQLiteVisitor {
	return visitors.NewSQLiteVisitor(opts...)
}

// NewPostgresVisitor creates a new PostgreSQL visitor.
func NewPostgresVisitor(opts ...visitors.Option) *visitors.PostgresVisitor {
	return visitors.NewPostgresVisitor(opts...)
}

// NewMySQLVisitor creates a new MySQL visitor.
func NewMySQLVisitor(opts ...visitors.Option) *visitors.MySQLVisitor {
	return visitors.NewMySQLVisitor(opts...)
}

// --- Visitor Options ---

// WithoutParams disables parameterised query mode.
//
// ⚠️ WARNING: Disables SQL injection protection. Only use for debugging or when
// you're certain all values are trusted. Production code should NEVER use this option.
func WithoutParams() visitors.Option {
	return visitors.WithoutParams()
}
