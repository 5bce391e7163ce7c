// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Select applies a JSONPath expression to a decoded snapshot and returns the
// matched values as a flat array. Matches that are arrays themselves are
// spliced in, so "$" and "$[*]" select the same roots.
func Select(raw any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}

	results := x.Get(raw)

	var out []any
	for _, r := range results {
		if arr, ok := r.([]any); ok {
			out = append(out, arr...)
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySelection, expr)
	}
	return out, nil
}
