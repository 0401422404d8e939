package cte

import (
	"testing"

	"github.com/bawdo/cteq/internal/testutil"
	"github.com/bawdo/cteq/schema"
)

func TestBindColumns(t *testing.T) {
	t.Parallel()
	cols, err := BindColumns([]string{"id", "name"}, schema.RowOf(schema.Integer, schema.Text))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cols.Arity(), 2)

	names := cols.Names()
	if names[0] != "id" || names[1] != "name" {
		t.Errorf("unexpected names: %v", names)
	}
	if !cols.Row().Equal(schema.RowOf(schema.Integer, schema.Text)) {
		t.Errorf("unexpected row: %v", cols.Row())
	}
}

func TestBindColumnsTooFewNames(t *testing.T) {
	t.Parallel()
	_, err := BindColumns([]string{"id"}, schema.RowOf(schema.Integer, schema.Text))
	testutil.AssertErrorIs(t, err, ErrArityMismatch)
}

func TestBindColumnsTooManyNames(t *testing.T) {
	t.Parallel()
	_, err := BindColumns([]string{"a", "b", "c"}, schema.RowOf(schema.Integer))
	testutil.AssertErrorIs(t, err, ErrArityMismatch)
}

func TestBindColumnsDuplicateName(t *testing.T) {
	t.Parallel()
	_, err := BindColumns([]string{"id", "id"}, schema.RowOf(schema.Integer, schema.Integer))
	testutil.AssertErrorIs(t, err, ErrDuplicateColumn)
}

func TestBindColumnsDuplicateAtAnyPosition(t *testing.T) {
	t.Parallel()
	_, err := BindColumns([]string{"a", "b", "a"}, schema.RowOf(schema.Integer, schema.Integer, schema.Integer))
	testutil.AssertErrorIs(t, err, ErrDuplicateColumn)
}

func TestBindColumnsEmptyName(t *testing.T) {
	t.Parallel()
	_, err := BindColumns([]string{"id", ""}, schema.RowOf(schema.Integer, schema.Text))
	testutil.AssertErrorIs(t, err, ErrInvalidIdentifier)
}

func TestZeroColumnSet(t *testing.T) {
	t.Parallel()
	var cols ColumnSet
	testutil.AssertEqual(t, cols.Arity(), 0)
	testutil.AssertEqual(t, len(cols.Names()), 0)
}

func TestTableColumns(t *testing.T) {
	t.Parallel()
	tbl := schema.NewTable("users",
		schema.Col("id", schema.Integer),
		schema.Col("name", schema.Text),
	)
	cols := TableColumns(tbl)
	testutil.AssertEqual(t, cols.Arity(), 2)
	if cols.Names()[0] != "id" {
		t.Errorf("expected declaration order preserved, got %v", cols.Names())
	}
}
