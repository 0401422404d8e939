package visitors

import (
	"testing"

	"github.com/bawdo/cteq/internal/testutil"
	"github.com/bawdo/cteq/nodes"
)

// --- Identifier quoting ---

func TestVisitTable(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), users, `"users"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), users, "`users`")
	testutil.AssertSQL(t, NewSQLiteVisitor(WithoutParams()), users, `"users"`)
}

func TestVisitAttribute(t *testing.T) {
	t.Parallel()
	col := nodes.NewTable("users").Col("name")
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), col, `"users"."name"`)
	testutil.AssertSQL(t, NewMySQLVisitor(WithoutParams()), col, "`users`.`name`")
}

// --- Literals ---

func TestVisitLiteralString(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Literal("Alice"), `'Alice'`)
}

func TestVisitLiteralStringEscapesSingleQuotes(t *testing.T) {
	t.Parallel()
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), nodes.Literal("O'Brien"), `'O''Brien'`)
}

func TestVisitLiteralNilIsNeverParameterized(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	testutil.AssertSQL(t, v, nodes.Literal(nil), `NULL`)
	if len(v.Params()) != 0 {
		t.Errorf("expected no params for NULL, got %v", v.Params())
	}
}

// --- Parameterization ---

func TestParameterizeDefaultsOn(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	cond := users.Col("age").Gt(18)

	pg := NewPostgresVisitor()
	testutil.AssertSQL(t, pg, cond, `"users"."age" > $1`)
	if len(pg.Params()) != 1 || pg.Params()[0] != 18 {
		t.Errorf("expected params [18], got %v", pg.Params())
	}

	my := NewMySQLVisitor()
	testutil.AssertSQL(t, my, cond, "`users`.`age` > ?")

	lite := NewSQLiteVisitor()
	testutil.AssertSQL(t, lite, cond, `"users"."age" > ?`)
}

func TestParamsCollectInEmissionOrder(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	cond := users.Col("a").Eq(1).And(users.Col("b").Eq(2))

	v := NewPostgresVisitor()
	testutil.AssertSQL(t, v, cond, `"users"."a" = $1 AND "users"."b" = $2`)
	params := v.Params()
	if len(params) != 2 || params[0] != 1 || params[1] != 2 {
		t.Errorf("expected params [1 2], got %v", params)
	}
}

func TestResetClearsParams(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	nodes.NewTable("users").Col("a").Eq(1).Accept(v)
	v.Reset()
	testutil.AssertSQL(t, v, nodes.NewTable("users").Col("b").Eq(2), `"users"."b" = $1`)
	if len(v.Params()) != 1 {
		t.Errorf("expected one param after reset, got %v", v.Params())
	}
}

// --- Raw SQL fragments ---

func TestVisitSqlLiteralEmitsRawText(t *testing.T) {
	t.Parallel()
	n := nodes.NewSqlLiteral("SELECT 1")
	testutil.AssertSQL(t, NewPostgresVisitor(), n, "SELECT 1")
}

func TestVisitSqlLiteralAppendsBinds(t *testing.T) {
	t.Parallel()
	v := NewPostgresVisitor()
	n := nodes.NewBoundSqlLiteral("SELECT $1::int", 7)
	testutil.AssertSQL(t, v, n, "SELECT $1::int")
	if len(v.Params()) != 1 || v.Params()[0] != 7 {
		t.Errorf("expected params [7], got %v", v.Params())
	}
}

// --- SELECT rendering ---

func TestVisitSelectCore(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	core := &nodes.SelectCore{
		From:        users,
		Projections: []nodes.Node{users.Col("id"), users.Col("name")},
		Wheres:      []nodes.Node{users.Col("active").Eq(true)},
		Orders:      []nodes.Node{users.Col("name").Asc()},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(),
		core,
		`SELECT "users"."id", "users"."name" FROM "users" WHERE "users"."active" = $1 ORDER BY "users"."name" ASC`)
}

func TestVisitSelectCoreNoFrom(t *testing.T) {
	t.Parallel()
	core := &nodes.SelectCore{
		Projections: []nodes.Node{nodes.Literal(1), nodes.Literal(1)},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), core, `SELECT 1, 1`)
}

func TestVisitSelectCoreJoin(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	posts := nodes.NewTable("posts")
	core := &nodes.SelectCore{
		From:        users,
		Projections: []nodes.Node{users.Star()},
		Joins: []*nodes.JoinNode{{
			Left:  users,
			Right: posts,
			Type:  nodes.InnerJoin,
			On:    posts.Col("user_id").Eq(users.Col("id")),
		}},
	}
	testutil.AssertSQL(t, NewPostgresVisitor(),
		core,
		`SELECT "users".* FROM "users" INNER JOIN "posts" ON "posts"."user_id" = "users"."id"`)
}

// --- Set operations ---

func TestVisitSetOperationParenthesizes(t *testing.T) {
	t.Parallel()
	left := &nodes.SelectCore{Projections: []nodes.Node{nodes.Literal(1)}}
	right := &nodes.SelectCore{Projections: []nodes.Node{nodes.Literal(2)}}
	op := &nodes.SetOperationNode{Left: left, Right: right, Type: nodes.UnionAll}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), op, `(SELECT 1) UNION ALL (SELECT 2)`)
}

// --- CTE rendering ---

func TestVisitCTESimple(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	body := &nodes.SelectCore{
		From:        users,
		Projections: []nodes.Node{users.Col("id")},
	}
	n := &nodes.CTENode{Name: "active", Columns: []string{"id"}, Query: body}
	testutil.AssertSQL(t, NewPostgresVisitor(), n, `"active" ("id") AS (SELECT "users"."id" FROM "users")`)
}

func TestVisitCTEOmitsEmptyColumnList(t *testing.T) {
	t.Parallel()
	body := &nodes.SelectCore{Projections: []nodes.Node{nodes.Literal(1)}}
	n := &nodes.CTENode{Name: "one", Query: body}
	testutil.AssertSQL(t, NewPostgresVisitor(WithoutParams()), n, `"one" AS (SELECT 1)`)
}

func TestVisitCTERecursiveJoinsSeedAndStepWithUnionAll(t *testing.T) {
	t.Parallel()
	n := &nodes.CTENode{
		Name:      "series",
		Columns:   []string{"n"},
		Recursive: true,
		Seed:      nodes.NewSqlLiteral("SELECT 1"),
		Step:      nodes.NewSqlLiteral("SELECT n + 1 FROM series WHERE n < 5"),
	}
	testutil.AssertSQL(t, NewPostgresVisitor(), n,
		`"series" ("n") AS (SELECT 1 UNION ALL SELECT n + 1 FROM series WHERE n < 5)`)
}

func TestVisitWith(t *testing.T) {
	t.Parallel()
	n := &nodes.WithNode{
		CTE:  &nodes.CTENode{Name: "one", Query: nodes.NewSqlLiteral("SELECT 1")},
		Body: nodes.NewSqlLiteral("SELECT * FROM one"),
	}
	testutil.AssertSQL(t, NewPostgresVisitor(), n, `WITH "one" AS (SELECT 1) SELECT * FROM one`)
}

func TestVisitWithRecursive(t *testing.T) {
	t.Parallel()
	n := &nodes.WithNode{
		CTE: &nodes.CTENode{
			Name:      "series",
			Recursive: true,
			Seed:      nodes.NewSqlLiteral("SELECT 1"),
			Step:      nodes.NewSqlLiteral("SELECT n + 1 FROM series"),
		},
		Body: nodes.NewSqlLiteral("SELECT n FROM series"),
	}
	testutil.AssertSQL(t, NewPostgresVisitor(), n,
		`WITH RECURSIVE "series" AS (SELECT 1 UNION ALL SELECT n + 1 FROM series) SELECT n FROM series`)
	testutil.AssertSQL(t, NewMySQLVisitor(), n,
		"WITH RECURSIVE `series` AS (SELECT 1 UNION ALL SELECT n + 1 FROM series) SELECT n FROM series")
}

// --- INSERT rendering ---

func TestVisitInsertStatement(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	stmt := &nodes.InsertStatement{
		Into:    users,
		Columns: []nodes.Node{users.Col("id"), users.Col("name")},
		Values:  [][]nodes.Node{{nodes.Literal(1), nodes.Literal("alice")}},
	}
	v := NewPostgresVisitor()
	testutil.AssertSQL(t, v, stmt, `INSERT INTO "users" ("id", "name") VALUES ($1, $2)`)
	if len(v.Params()) != 2 {
		t.Errorf("expected two params, got %v", v.Params())
	}
}
