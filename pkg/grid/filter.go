package grid

import (
	"strconv"
	"strings"
)

// Matches evaluates one condition against one raw field value.
//
// Text operators lowercase both sides before comparing. The relational
// operators parse both sides as floats; a failed parse yields false rather
// than an error so malformed data can never break the pipeline.
func (c Condition) Matches(value string) bool {
	switch c.Op {
	case OpGreaterThan, OpLessThan:
		fv, err1 := strconv.ParseFloat(strings.TrimSpace(value), 64)
		cv, err2 := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err1 != nil || err2 != nil {
			return false
		}
		if c.Op == OpGreaterThan {
			return fv > cv
		}
		return fv < cv
	}

	v := strings.ToLower(value)
	w := strings.ToLower(c.Value)
	switch c.Op {
	case OpContains:
		return strings.Contains(v, w)
	case OpEquals:
		return v == w
	case OpStartsWith:
		return strings.HasPrefix(v, w)
	case OpEndsWith:
		return strings.HasSuffix(v, w)
	default:
		return false
	}
}

// matchConditions reports whether a field value passes a column's condition
// list. Zero conditions impose no constraint; otherwise any single match
// passes the column (OR).
func matchConditions(value string, conds []Condition) bool {
	if len(conds) == 0 {
		return true
	}
	for _, c := range conds {
		if c.Matches(value) {
			return true
		}
	}
	return false
}

// applyFilters keeps the rows that pass every column holding at least one
// condition (AND across columns, OR within a column). Input order is
// preserved. Attaching conditions to non-filterable columns is a caller
// contract violation and is not checked here.
func applyFilters(rows []Record, conds map[string][]Condition) []Record {
	active := 0
	for _, cs := range conds {
		active += len(cs)
	}
	if active == 0 {
		return rows
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		pass := true
		for key, cs := range conds {
			if !matchConditions(row.FieldString(key), cs) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, row)
		}
	}
	return out
}
