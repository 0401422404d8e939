// Package managers provides high-level fluent APIs for building SQL ASTs.
package managers

import (
	"github.com/bawdo/cteq/nodes"
)

// toSQLParams is a helper that resets a parameterizer (if present), calls
// the provided generate function, and returns SQL + params.
func toSQLParams(v nodes.Visitor, generate func(nodes.Visitor) (string, error)) (string, []any, error) {
	p, _ := v.(nodes.Parameterizer)
	if p != nil {
		p.Reset()
	}

	sql, err := generate(v)
	if err != nil {
		return "", nil, err
	}

	if p != nil {
		return sql, p.Params(), nil
	}
	return sql, nil, nil
}
