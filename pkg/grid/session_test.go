package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionColumns() []Column {
	return []Column{
		{Key: "name", Header: "Name", Visible: true, Searchable: true, Sortable: true, Filterable: true, Format: Format{Kind: FormatText}},
		{Key: "dept", Header: "Department", Visible: true, Searchable: true, Sortable: true, Filterable: true, Format: Format{Kind: FormatText}},
		{Key: "salary", Header: "Salary", Visible: true, Sortable: true, Filterable: true, Format: Format{Kind: FormatCurrency, CurrencySymbol: "$", Precision: 2}},
		{Key: "hired", Header: "Hired", Visible: true, Sortable: true, Format: Format{Kind: FormatDate}},
	}
}

func sessionRecords() []Record {
	return []Record{
		{"name": "Avery", "dept": "eng", "salary": "98000", "hired": "2020-02-01"},
		{"name": "Blake", "dept": "sales", "salary": "61000", "hired": "2019-06-15"},
		{"name": "Casey", "dept": "eng", "salary": "105000", "hired": "2021-09-01"},
		{"name": "Devon", "dept": "ops", "salary": "72000", "hired": "2018-01-20"},
		{"name": "Ellis", "dept": "eng", "salary": "88000", "hired": "2022-03-10"},
		{"name": "Finley", "dept": "sales", "salary": "59000", "hired": "2023-07-04"},
		{"name": "Gray", "dept": "ops", "salary": "67000", "hired": "2020-11-30"},
	}
}

func newTestSession() *Session {
	return NewSession(sessionRecords(), sessionColumns(), Options{
		PageSizes:       []int{5, 10, 25},
		DefaultPageSize: 5,
		SearchDebounce:  -1, // synchronous for tests
	})
}

func TestSessionDeterminism(t *testing.T) {
	s := newTestSession()
	s.SetSearchTerm("e")
	s.AddCondition("salary", Condition{Op: OpGreaterThan, Value: "60000"})
	s.ToggleSort("salary")

	first := s.View()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.View())
	}
}

func TestSessionPipelineOrder(t *testing.T) {
	s := newTestSession()
	// Search narrows to eng + sales rows containing "e" in a searchable
	// column, filter keeps eng, sort orders by salary ascending.
	s.SetSearchTerm("e")
	s.AddCondition("dept", Condition{Op: OpEquals, Value: "eng"})
	s.ToggleSort("salary")

	res := s.View()
	require.Equal(t, 3, res.TotalRows)
	got := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		got[i] = r.FieldString("name")
	}
	assert.Equal(t, []string{"Ellis", "Avery", "Casey"}, got)
}

func TestSessionSearchHiddenColumnStillMatches(t *testing.T) {
	s := newTestSession()
	s.ToggleColumnVisible("dept")

	s.SetSearchTerm("sales")
	res := s.View()
	assert.Equal(t, 2, res.TotalRows)
}

func TestSessionSearchDebounce(t *testing.T) {
	s := NewSession(sessionRecords(), sessionColumns(), Options{
		DefaultPageSize: 10,
		SearchDebounce:  time.Hour,
	})

	// A burst inside the quiet period keeps only the final term pending;
	// the buffer echoes immediately, the pipeline stays on the old term.
	s.SetSearchInput("a")
	s.SetSearchInput("av")
	s.SetSearchInput("avery")
	assert.Equal(t, "avery", s.SearchInput())
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, 7, s.View().TotalRows)

	s.FlushSearch()
	assert.Equal(t, "avery", s.SearchTerm())
	assert.Equal(t, 1, s.View().TotalRows)
}

func TestSessionSearchHookDelivery(t *testing.T) {
	settled := make(chan string, 4)
	s := NewSession(sessionRecords(), sessionColumns(), Options{
		DefaultPageSize: 10,
		SearchDebounce:  25 * time.Millisecond,
		OnSearch:        func(term string) { settled <- term },
	})

	// With a hook installed the timer goroutine only delivers the term;
	// nothing in the session changes until the host applies it from its
	// own loop.
	s.SetSearchInput("a")
	s.SetSearchInput("avery")

	var term string
	select {
	case term = <-settled:
	case <-time.After(2 * time.Second):
		t.Fatal("settled term never delivered")
	}
	assert.Equal(t, "avery", term)
	assert.Equal(t, "", s.SearchTerm())
	assert.Equal(t, 7, s.View().TotalRows)
	assert.Empty(t, settled)

	s.SetSearchTerm(term)
	assert.Equal(t, "avery", s.SearchTerm())
	assert.Equal(t, 1, s.View().TotalRows)
}

func TestSessionFlushSearch(t *testing.T) {
	s := NewSession(sessionRecords(), sessionColumns(), Options{
		DefaultPageSize: 10,
		SearchDebounce:  time.Hour,
	})
	s.SetSearchInput("gray")
	assert.Equal(t, "", s.SearchTerm())

	s.FlushSearch()
	assert.Equal(t, "gray", s.SearchTerm())
	assert.Equal(t, 1, s.View().TotalRows)
}

func TestSessionPageClampOnShrink(t *testing.T) {
	s := newTestSession() // 7 rows, page size 5
	s.SetPage(10)

	res := s.View()
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 5, res.Offset)
}

func TestSessionPageSizeChangeResetsToFirstPage(t *testing.T) {
	s := newTestSession()
	s.SetPage(2)
	require.Equal(t, 2, s.View().Page)

	s.SetPageSize(10)
	res := s.View()
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 7, len(res.Rows))
}

func TestSessionEmptyStates(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, EmptyNone, s.View().Empty)

	s.AddCondition("name", Condition{Op: OpEquals, Value: "nobody"})
	assert.Equal(t, EmptyNoRows, s.View().Empty)
	s.ClearConditions("name")

	for _, col := range sessionColumns() {
		s.ToggleColumnVisible(col.Key)
	}
	// No visible columns wins regardless of row count.
	assert.Equal(t, EmptyNoColumns, s.View().Empty)
}

func TestSessionSelectionLifecycle(t *testing.T) {
	s := newTestSession()
	s.Click(2)
	s.RangeClick(6)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, s.SelectedIndices())

	s.Click(4)
	assert.Equal(t, []int{4}, s.SelectedIndices())

	// Recomputing the filtered sequence invalidates positional indices.
	s.SetSearchTerm("eng")
	assert.Zero(t, s.SelectionCount())
}

func TestSessionSelectPageAndInverse(t *testing.T) {
	s := newTestSession() // page size 5
	s.ToggleClick(6)      // second-page row
	s.SelectPage()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 6}, s.SelectedIndices())

	s.DeselectPage()
	assert.Equal(t, []int{6}, s.SelectedIndices())
}

func TestSessionConditionEditing(t *testing.T) {
	s := newTestSession()
	s.AddCondition("dept", Condition{Op: OpEquals, Value: "eng"})
	s.AddCondition("dept", Condition{Op: OpEquals, Value: "ops"})
	assert.Equal(t, 5, s.View().TotalRows)

	s.UpdateCondition("dept", 1, Condition{Op: OpEquals, Value: "sales"})
	assert.Equal(t, 5, s.View().TotalRows)

	s.RemoveCondition("dept", 0)
	assert.Equal(t, 2, s.View().TotalRows)
	require.Len(t, s.Conditions("dept"), 1)

	s.RemoveCondition("dept", 0)
	assert.Equal(t, 7, s.View().TotalRows)
	assert.Empty(t, s.Conditions("dept"))
}

func TestSessionPredicate(t *testing.T) {
	s := newTestSession()
	s.SetPredicate(func(r Record) bool {
		return r.FieldString("dept") != "sales"
	})
	assert.Equal(t, 5, s.View().TotalRows)

	s.SetPredicate(nil)
	assert.Equal(t, 7, s.View().TotalRows)
}

func TestSessionFilteredRowsIsFullSequence(t *testing.T) {
	s := newTestSession() // 7 rows across 2 pages
	s.ToggleSort("name")

	rows := s.FilteredRows()
	require.Len(t, rows, 7)
	assert.Equal(t, "Avery", rows[0].FieldString("name"))
	assert.Equal(t, "Gray", rows[6].FieldString("name"))
}
