package grid

import "time"

// Options configures a view session.
type Options struct {
	// PageSizes is the enumerated set of selectable page sizes.
	PageSizes []int
	// DefaultPageSize is the initial page size. Falls back to the first
	// entry of PageSizes, then to 10.
	DefaultPageSize int
	// SearchDebounce is the quiet period for search input. Zero means
	// DefaultSearchDebounce; a negative value disables debouncing so
	// input applies synchronously.
	SearchDebounce time.Duration
	// OnSearch, when set, receives each search term whose quiet period
	// elapsed instead of the session applying it. The hook runs on the
	// debounce timer goroutine; an event-driven host forwards the term
	// into its own loop and applies it there with SetSearchTerm, so the
	// timer never touches session state. When unset, or when the
	// debounce is synchronous, settled terms are applied directly.
	OnSearch func(term string)
}

// Session owns the live view state for one record collection: search input
// and effective term, per-column filter conditions, sort state, pagination,
// selection, and column visibility. All mutation goes through its methods,
// and View derives the result deterministically from the current state.
//
// A session is not safe for concurrent use; an event-driven host holds a
// single logical thread of control, and a multi-threaded host must wrap
// each mutation+View pair in one critical section.
type Session struct {
	records []Record
	columns []Column

	searchInput string
	searchTerm  string
	debounce    *Debouncer
	onSearch    func(string)

	conditions map[string][]Condition
	predicate  func(Record) bool
	sortState  SortState
	pageState  PageState
	pageSizes  []int
	selection  *Selection

	filtered []Record
	stale    bool
}

// NewSession creates a session over the given records and column set. Both
// are treated as immutable inputs for the life of the session; column
// visibility toggles operate on the session's own copy.
func NewSession(records []Record, columns []Column, opts Options) *Session {
	size := opts.DefaultPageSize
	if size < 1 && len(opts.PageSizes) > 0 {
		size = opts.PageSizes[0]
	}
	if size < 1 {
		size = 10
	}
	delay := opts.SearchDebounce
	if delay == 0 {
		delay = DefaultSearchDebounce
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)

	return &Session{
		records:    records,
		columns:    cols,
		debounce:   NewDebouncer(delay),
		onSearch:   opts.OnSearch,
		conditions: make(map[string][]Condition),
		pageState:  PageState{Size: size, Page: 1},
		pageSizes:  opts.PageSizes,
		selection:  NewSelection(),
		stale:      true,
	}
}

// SetOnSearch replaces the settled-search hook. Event-driven hosts that
// construct their event loop after the session use this to route settled
// terms back through the loop.
func (s *Session) SetOnSearch(fn func(term string)) { s.onSearch = fn }

// Columns returns the session's column set, including visibility state.
func (s *Session) Columns() []Column { return s.columns }

// VisibleColumns returns the columns currently shown, in configured order.
func (s *Session) VisibleColumns() []Column {
	out := make([]Column, 0, len(s.columns))
	for _, col := range s.columns {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

// ToggleColumnVisible flips the visibility of the column with the given
// key. Visibility affects rendering and export only, never search results.
func (s *Session) ToggleColumnVisible(key string) {
	for i := range s.columns {
		if s.columns[i].Key == key {
			s.columns[i].Visible = !s.columns[i].Visible
			return
		}
	}
}

// SetSearchInput records a keystroke in the search buffer. The buffer is
// immediately visible via SearchInput for UI echo, but the effective term
// only reaches the pipeline after the quiet period with no further input;
// superseded pending terms are discarded.
func (s *Session) SetSearchInput(input string) {
	s.searchInput = input
	if fn := s.onSearch; fn != nil && s.debounce.delay > 0 {
		// The timer callback must not mutate the session; it races the
		// host's event loop. Hand the term to the hook instead. A
		// synchronous debounce already runs on the caller's goroutine,
		// so it applies inline.
		s.debounce.Trigger(func() { fn(input) })
		return
	}
	s.debounce.Trigger(func() { s.applySearchTerm(input) })
}

// FlushSearch settles any pending search input now instead of waiting out
// the quiet period: it is applied directly, or delivered to the OnSearch
// hook when one is set.
func (s *Session) FlushSearch() { s.debounce.Flush() }

// SetSearchTerm applies a term synchronously, bypassing the debounce and
// cancelling anything pending.
func (s *Session) SetSearchTerm(term string) {
	s.debounce.Cancel()
	s.searchInput = term
	s.applySearchTerm(term)
}

func (s *Session) applySearchTerm(term string) {
	if term == s.searchTerm {
		return
	}
	s.searchTerm = term
	s.invalidate()
}

// SearchInput returns the raw input buffer, for UI echo.
func (s *Session) SearchInput() string { return s.searchInput }

// SearchTerm returns the effective (settled) search term.
func (s *Session) SearchTerm() string { return s.searchTerm }

// AddCondition appends a filter condition to the column's list. Only
// filterable columns should hold conditions; that is the caller's contract.
func (s *Session) AddCondition(key string, cond Condition) {
	s.conditions[key] = append(s.conditions[key], cond)
	s.invalidate()
}

// UpdateCondition replaces the i-th condition of the column's list.
// Out-of-range indices are ignored.
func (s *Session) UpdateCondition(key string, i int, cond Condition) {
	cs := s.conditions[key]
	if i < 0 || i >= len(cs) {
		return
	}
	cs[i] = cond
	s.invalidate()
}

// RemoveCondition deletes the i-th condition of the column's list,
// preserving the order of the rest.
func (s *Session) RemoveCondition(key string, i int) {
	cs := s.conditions[key]
	if i < 0 || i >= len(cs) {
		return
	}
	s.conditions[key] = append(cs[:i], cs[i+1:]...)
	if len(s.conditions[key]) == 0 {
		delete(s.conditions, key)
	}
	s.invalidate()
}

// ClearConditions drops every condition on the column.
func (s *Session) ClearConditions(key string) {
	if _, ok := s.conditions[key]; !ok {
		return
	}
	delete(s.conditions, key)
	s.invalidate()
}

// Conditions returns the column's condition list in insertion order.
func (s *Session) Conditions(key string) []Condition { return s.conditions[key] }

// SetPredicate installs an additional row predicate evaluated after the
// per-column filters (the expression-filter hook). A nil predicate removes
// it. Predicate panics are not recovered; the predicate must degrade to
// false on its own, the way the expression evaluator does.
func (s *Session) SetPredicate(p func(Record) bool) {
	s.predicate = p
	s.invalidate()
}

// ToggleSort advances the sort cycle on the given column, clearing any
// previously active column.
func (s *Session) ToggleSort(key string) {
	s.sortState = CycleSort(s.sortState, key)
	s.invalidate()
}

// SetSort replaces the sort state wholesale.
func (s *Session) SetSort(state SortState) {
	if s.sortState == state {
		return
	}
	s.sortState = state
	s.invalidate()
}

// Sort returns the active sort state.
func (s *Session) Sort() SortState { return s.sortState }

// SetPage requests a page. The value is clamped against the current result
// set on the next View.
func (s *Session) SetPage(page int) { s.pageState.Page = page }

// SetPageSize switches to a new page size and explicitly resets to page 1.
func (s *Session) SetPageSize(size int) {
	if size < 1 || size == s.pageState.Size {
		return
	}
	s.pageState = PageState{Size: size, Page: 1}
}

// Page returns the current pagination state.
func (s *Session) Page() PageState { return s.pageState }

// PageSizes returns the configured selectable page sizes.
func (s *Session) PageSizes() []int { return s.pageSizes }

// Click applies plain-click selection semantics at the global index i.
func (s *Session) Click(i int) { s.selection.Click(i) }

// RangeClick applies shift-click range extension at the global index i.
func (s *Session) RangeClick(i int) { s.selection.RangeClick(i) }

// ToggleClick flips selection membership of the global index i.
func (s *Session) ToggleClick(i int) { s.selection.ToggleClick(i) }

// SelectPage adds every row of the current page to the selection.
func (s *Session) SelectPage() {
	lo, hi, _, _ := Paginate(len(s.filteredRows()), s.pageState.Size, s.pageState.Page)
	s.selection.AddRange(lo, hi)
}

// DeselectPage removes exactly the current page's rows from the selection,
// leaving off-page selections untouched.
func (s *Session) DeselectPage() {
	lo, hi, _, _ := Paginate(len(s.filteredRows()), s.pageState.Size, s.pageState.Page)
	s.selection.RemoveRange(lo, hi)
}

// Selected reports whether the global index i is selected.
func (s *Session) Selected(i int) bool { return s.selection.Has(i) }

// SelectedIndices returns the selected global indices in ascending order.
func (s *Session) SelectedIndices() []int { return s.selection.Indices() }

// SelectionCount returns the number of selected rows.
func (s *Session) SelectionCount() int { return s.selection.Len() }

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.selection.Clear() }

// invalidate marks the filtered sequence for recomputation and clears the
// selection: indices are positional and do not survive a reorder.
func (s *Session) invalidate() {
	s.stale = true
	s.selection.Clear()
}

// filteredRows runs the upstream pipeline stages, search then filters then
// predicate then sort, caching the result until an input changes.
func (s *Session) filteredRows() []Record {
	if !s.stale {
		return s.filtered
	}
	rows := applySearch(s.records, s.searchTerm, s.columns)
	rows = applyFilters(rows, s.conditions)
	if s.predicate != nil {
		kept := make([]Record, 0, len(rows))
		for _, row := range rows {
			if s.predicate(row) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	rows = applySort(rows, s.sortState, s.columns)
	s.filtered = rows
	s.stale = false
	return s.filtered
}

// FilteredRows exposes the full filtered, sorted, pre-pagination sequence,
// which the export collaborator serializes.
func (s *Session) FilteredRows() []Record { return s.filteredRows() }

// View evaluates the pipeline over the current state: search, per-column
// filters, sort, pagination clamp, page slice. Identical inputs always
// yield identical output. The clamped page number is written back so the
// session's pagination state tracks filter-driven shrinkage.
func (s *Session) View() ViewResult {
	rows := s.filteredRows()
	lo, hi, page, totalPages := Paginate(len(rows), s.pageState.Size, s.pageState.Page)
	s.pageState.Page = page

	res := ViewResult{
		Rows:       rows[lo:hi],
		Offset:     lo,
		TotalRows:  len(rows),
		TotalPages: totalPages,
		Page:       page,
	}
	switch {
	case len(s.VisibleColumns()) == 0:
		res.Empty = EmptyNoColumns
	case len(rows) == 0:
		res.Empty = EmptyNoRows
	}
	return res
}
