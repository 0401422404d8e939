package cte

import "errors"

// Construction-time validation errors. All are reported synchronously by the
// call that triggers them; nothing is deferred to execution time.
var (
	// ErrArityMismatch reports a column-name count that disagrees with the
	// row shape of the fragment it is bound to.
	ErrArityMismatch = errors.New("column count does not match row arity")

	// ErrDuplicateColumn reports a repeated name in the exposed column list.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRowTypeMismatch reports seed and step fragments projecting
	// incompatible row shapes.
	ErrRowTypeMismatch = errors.New("seed and step row types differ")

	// ErrInvalidIdentifier reports an empty CTE or column name.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)
