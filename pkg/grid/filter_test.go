package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionMatches(t *testing.T) {
	tests := []struct {
		name  string
		cond  Condition
		value string
		want  bool
	}{
		{name: "contains case-insensitive", cond: Condition{Op: OpContains, Value: "ALi"}, value: "Thalia", want: true},
		{name: "contains miss", cond: Condition{Op: OpContains, Value: "xyz"}, value: "Thalia", want: false},
		{name: "equals case-insensitive", cond: Condition{Op: OpEquals, Value: "ACTIVE"}, value: "active", want: true},
		{name: "equals substring is not equality", cond: Condition{Op: OpEquals, Value: "act"}, value: "active", want: false},
		{name: "starts-with", cond: Condition{Op: OpStartsWith, Value: "th"}, value: "Thalia", want: true},
		{name: "starts-with miss", cond: Condition{Op: OpStartsWith, Value: "ia"}, value: "Thalia", want: false},
		{name: "ends-with", cond: Condition{Op: OpEndsWith, Value: "IA"}, value: "Thalia", want: true},
		{name: "greater-than numeric", cond: Condition{Op: OpGreaterThan, Value: "10"}, value: "42", want: true},
		{name: "greater-than equal is false", cond: Condition{Op: OpGreaterThan, Value: "42"}, value: "42", want: false},
		{name: "less-than numeric", cond: Condition{Op: OpLessThan, Value: "10"}, value: "3.5", want: true},
		{name: "relational non-numeric value is false", cond: Condition{Op: OpGreaterThan, Value: "10"}, value: "abc", want: false},
		{name: "relational non-numeric threshold is false", cond: Condition{Op: OpLessThan, Value: "abc"}, value: "5", want: false},
		{name: "unknown operator is false", cond: Condition{Op: Operator("regex"), Value: "a"}, value: "a", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Matches(tt.value))
		})
	}
}

func TestApplyFiltersORWithinColumn(t *testing.T) {
	rows := []Record{
		{"city": "Oslo"},
		{"city": "Lisbon"},
		{"city": "Osaka"},
	}
	conds := map[string][]Condition{
		"city": {
			{Op: OpStartsWith, Value: "os"},
			{Op: OpEquals, Value: "lisbon"},
		},
	}

	got := applyFilters(rows, conds)

	// A row passes the column if any one condition matches.
	assert.Len(t, got, 3)
	for _, row := range rows {
		c1 := conds["city"][0].Matches(row.FieldString("city"))
		c2 := conds["city"][1].Matches(row.FieldString("city"))
		assert.True(t, c1 || c2)
	}
}

func TestApplyFiltersANDAcrossColumns(t *testing.T) {
	rows := []Record{
		{"city": "Oslo", "pop": "700000"},
		{"city": "Osaka", "pop": "2700000"},
		{"city": "Ottawa", "pop": "1000000"},
	}
	conds := map[string][]Condition{
		"city": {{Op: OpStartsWith, Value: "os"}},
		"pop":  {{Op: OpGreaterThan, Value: "1000000"}},
	}

	got := applyFilters(rows, conds)

	assert.Len(t, got, 1)
	assert.Equal(t, "Osaka", got[0].FieldString("city"))
}

func TestApplyFiltersNoConditionsIsNoop(t *testing.T) {
	rows := []Record{{"a": "1"}, {"a": "2"}}
	assert.Equal(t, rows, applyFilters(rows, nil))
	assert.Equal(t, rows, applyFilters(rows, map[string][]Condition{"a": {}}))
}

func TestApplyFiltersPreservesOrder(t *testing.T) {
	rows := []Record{
		{"n": "3"}, {"n": "1"}, {"n": "9"}, {"n": "5"},
	}
	got := applyFilters(rows, map[string][]Condition{
		"n": {{Op: OpGreaterThan, Value: "2"}},
	})
	assert.Equal(t, []string{"3", "9", "5"}, []string{
		got[0].FieldString("n"), got[1].FieldString("n"), got[2].FieldString("n"),
	})
}
