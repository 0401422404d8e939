package conn

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/bawdo/cteq/cte"
	"github.com/bawdo/cteq/internal/testutil"
	"github.com/bawdo/cteq/managers"
	"github.com/bawdo/cteq/nodes"
	"github.com/bawdo/cteq/schema"
	"github.com/bawdo/cteq/visitors"
)

func openSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := Open(SQLite, ":memory:")
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDialectString(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, Postgres.String(), "postgres")
	testutil.AssertEqual(t, MySQL.String(), "mysql")
	testutil.AssertEqual(t, SQLite.String(), "sqlite")
}

func TestDialectDriverName(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, Postgres.DriverName(), "pgx")
	testutil.AssertEqual(t, MySQL.DriverName(), "mysql")
	testutil.AssertEqual(t, SQLite.DriverName(), "sqlite")
}

func TestDialectNewVisitor(t *testing.T) {
	t.Parallel()
	if _, ok := Postgres.NewVisitor().(*visitors.PostgresVisitor); !ok {
		t.Error("expected a PostgresVisitor")
	}
	if _, ok := MySQL.NewVisitor().(*visitors.MySQLVisitor); !ok {
		t.Error("expected a MySQLVisitor")
	}
	if _, ok := SQLite.NewVisitor().(*visitors.SQLiteVisitor); !ok {
		t.Error("expected a SQLiteVisitor")
	}
}

// Recursive number series, assembled from builder fragments and executed end
// to end.
func TestRecursiveSeriesEndToEnd(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	row := schema.RowOf(schema.Integer)
	series := nodes.NewTable("series")

	seed := managers.NewSelectManager(nil).Select(nodes.NewBindParam(1))
	step := managers.NewSelectManager(series).
		Select(series.Col("n").Plus(nodes.Literal(1))).
		Where(series.Col("n").Lt(nodes.NewBindParam(5)))
	final := managers.NewSelectManager(series).
		Select(series.Col("n")).
		Order(series.Col("n").Asc())

	ex, err := db.WithRecursive("series", []string{"n"}, cte.NewRecursiveParts(
		cte.Seed(seed, row),
		cte.Step(step, row),
		cte.Final(final, row),
	))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, ex.SQL,
		`WITH RECURSIVE "series" ("n") AS (SELECT ? UNION ALL SELECT "series"."n" + ? FROM "series" WHERE "series"."n" < ?) SELECT "series"."n" FROM "series" ORDER BY "series"."n" ASC`)

	ns, err := Load(context.Background(), ex, func(scan func(...any) error) (int, error) {
		var n int
		err := scan(&n)
		return n, err
	})
	testutil.AssertNoError(t, err)

	want := []int{1, 2, 3, 4, 5}
	if len(ns) != len(want) {
		t.Fatalf("got %v, want %v", ns, want)
	}
	for i := range want {
		if ns[i] != want[i] {
			t.Errorf("row %d: got %d, want %d", i, ns[i], want[i])
		}
	}
}

// Ancestor chain walked from a leaf to the root.
func TestRecursiveAncestorsEndToEnd(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	_, err := db.Unwrap().Exec(`CREATE TABLE tree_nodes (id INTEGER, parent_id INTEGER, name TEXT)`)
	testutil.AssertNoError(t, err)
	_, err = db.Unwrap().Exec(`INSERT INTO tree_nodes VALUES (1, NULL, 'root'), (2, 1, 'child'), (3, 2, 'grandchild')`)
	testutil.AssertNoError(t, err)

	treeNodes := nodes.NewTable("tree_nodes")
	anc := nodes.NewTable("ancestors")
	row := schema.RowOf(schema.Integer, schema.Integer, schema.Text, schema.Integer)

	seed := managers.NewSelectManager(treeNodes).
		Select(treeNodes.Col("id"), treeNodes.Col("parent_id"), treeNodes.Col("name"), nodes.Literal(0)).
		Where(treeNodes.Col("id").Eq(nodes.NewBindParam(2)))
	step := managers.NewSelectManager(treeNodes).
		Select(treeNodes.Col("id"), treeNodes.Col("parent_id"), treeNodes.Col("name"), anc.Col("depth").Plus(nodes.Literal(1))).
		Join(anc).On(treeNodes.Col("id").Eq(anc.Col("parent_id")))
	final := managers.NewSelectManager(anc).
		Select(anc.Col("name")).
		Order(anc.Col("depth").Asc())

	ex, err := db.WithRecursive("ancestors", []string{"id", "parent_id", "name", "depth"}, cte.NewRecursiveParts(
		cte.Seed(seed, row),
		cte.Step(step, row),
		cte.Final(final, schema.RowOf(schema.Text)),
	))
	testutil.AssertNoError(t, err)

	names, err := Load(context.Background(), ex, func(scan func(...any) error) (string, error) {
		var name string
		err := scan(&name)
		return name, err
	})
	testutil.AssertNoError(t, err)

	want := []string{"child", "root"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSimpleCTEEndToEnd(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	_, err := db.Unwrap().Exec(`CREATE TABLE users (id INTEGER, name TEXT, active BOOLEAN)`)
	testutil.AssertNoError(t, err)
	_, err = db.Unwrap().Exec(`INSERT INTO users VALUES (1, 'alice', 1), (2, 'bob', 0), (3, 'carol', 1)`)
	testutil.AssertNoError(t, err)

	users := nodes.NewTable("users")
	active := nodes.NewTable("active_users")

	body := managers.NewSelectManager(users).
		Select(users.Col("id"), users.Col("name")).
		Where(users.Col("active").Eq(true))
	final := managers.NewSelectManager(active).
		Select(active.Col("name")).
		Order(active.Col("name").Asc())

	ex, err := db.WithCTE("active_users", []string{"id", "name"}, cte.NewParts(
		cte.Body(body, schema.RowOf(schema.Integer, schema.Text)),
		cte.Final(final, schema.RowOf(schema.Text)),
	))
	testutil.AssertNoError(t, err)

	names, err := Load(context.Background(), ex, func(scan func(...any) error) (string, error) {
		var name string
		err := scan(&name)
		return name, err
	})
	testutil.AssertNoError(t, err)

	want := []string{"alice", "carol"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

// An empty column name list omits the explicit column list and skips arity
// validation; names fall out of the defining query.
func TestEmptyColumnListEndToEnd(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	ex, err := db.WithRecursive("series", nil, cte.NewRecursiveParts(
		cte.SeedSQL("SELECT 1 AS n", schema.RowOf(schema.Integer)),
		cte.StepSQL("SELECT n + 1 FROM series WHERE n < 3", schema.RowOf(schema.Integer)),
		cte.FinalSQL("SELECT n FROM series ORDER BY n", schema.RowOf(schema.Integer)),
	))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ex.SQL,
		`WITH RECURSIVE "series" AS (SELECT 1 AS n UNION ALL SELECT n + 1 FROM series WHERE n < 3) SELECT n FROM series ORDER BY n`)

	ns, err := Load(context.Background(), ex, func(scan func(...any) error) (int, error) {
		var n int
		err := scan(&n)
		return n, err
	})
	testutil.AssertNoError(t, err)
	if len(ns) != 3 {
		t.Fatalf("got %v, want 3 rows", ns)
	}
}

func TestValidationErrorsPropagate(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	row := schema.RowOf(schema.Integer)
	parts := cte.NewRecursiveParts(
		cte.SeedSQL("SELECT 1", row),
		cte.StepSQL("SELECT n + 1 FROM series", row),
		cte.FinalSQL("SELECT n FROM series", row),
	)

	_, err := db.WithRecursive("series", []string{"a", "b"}, parts)
	testutil.AssertErrorIs(t, err, cte.ErrArityMismatch)

	pairRow := schema.RowOf(schema.Integer, schema.Integer)
	pairParts := cte.NewRecursiveParts(
		cte.SeedSQL("SELECT 1, 2", pairRow),
		cte.StepSQL("SELECT a + 1, b + 1 FROM pairs", pairRow),
		cte.FinalSQL("SELECT * FROM pairs", pairRow),
	)
	_, err = db.WithRecursive("pairs", []string{"n", "n"}, pairParts)
	testutil.AssertErrorIs(t, err, cte.ErrDuplicateColumn)

	_, err = db.WithRecursive("", nil, parts)
	testutil.AssertErrorIs(t, err, cte.ErrInvalidIdentifier)
}

func TestQueryRowAndExec(t *testing.T) {
	t.Parallel()
	db := openSQLite(t)

	ex, err := db.WithCTE("one", nil, cte.NewParts(
		cte.BodySQL("SELECT 1 AS n", schema.RowOf(schema.Integer)),
		cte.FinalSQL("SELECT n FROM one", schema.RowOf(schema.Integer)),
	))
	testutil.AssertNoError(t, err)

	var n int
	testutil.AssertNoError(t, ex.QueryRow(context.Background()).Scan(&n))
	testutil.AssertEqual(t, n, 1)

	if _, err := ex.Exec(context.Background()); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}
