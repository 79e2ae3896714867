package ui

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// operatorTokens maps filter prompt tokens to condition operators.
var operatorTokens = map[string]grid.Operator{
	"contains":    grid.OpContains,
	"~":           grid.OpContains,
	"equals":      grid.OpEquals,
	"=":           grid.OpEquals,
	"==":          grid.OpEquals,
	"starts-with": grid.OpStartsWith,
	"^":           grid.OpStartsWith,
	"ends-with":   grid.OpEndsWith,
	"$":           grid.OpEndsWith,
	">":           grid.OpGreaterThan,
	"<":           grid.OpLessThan,
}

// ParseCondition parses filter prompt input of the form
// "<column> <operator> <value>", e.g. "salary > 50000" or
// "name contains smith". The value may contain spaces.
func ParseCondition(input string, columns []grid.Column) (string, grid.Condition, error) {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 3)
	if len(parts) < 3 {
		return "", grid.Condition{}, fmt.Errorf("want <column> <operator> <value>, got %q", input)
	}
	key, opTok, value := parts[0], parts[1], strings.TrimSpace(parts[2])

	op, ok := operatorTokens[strings.ToLower(opTok)]
	if !ok {
		return "", grid.Condition{}, fmt.Errorf("unknown operator %q", opTok)
	}

	for _, col := range columns {
		if col.Key == key {
			if !col.Filterable {
				return "", grid.Condition{}, fmt.Errorf("column %q is not filterable", key)
			}
			return key, grid.Condition{Op: op, Value: value}, nil
		}
	}
	return "", grid.Condition{}, fmt.Errorf("unknown column %q", key)
}
