// Package ui renders a grid session as an interactive terminal table:
// header row with sort indicators, selectable page rows, search and filter
// prompts, and a pagination footer. All view-state mutation flows through
// the session; the UI only paints results and forwards input.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/gridx/internal/expr"
	"github.com/oakwood-commons/gridx/internal/formatter"
	"github.com/oakwood-commons/gridx/pkg/grid"
)

// SearchSettledMsg carries a search term whose quiet period elapsed on the
// debounce timer. The term is compared against the live input buffer so
// only the latest one is applied, and it is applied here on the update
// loop; session state is never touched from the timer goroutine.
type SearchSettledMsg struct {
	Term string
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeFilter
	modeExpr
	modeHelp
)

const (
	maxAutoColWidth = 28
	minColWidth     = 4
)

// Config holds host-provided settings for the table UI.
type Config struct {
	AppName string
	NoColor bool
	Theme   Theme
	Width   int
	Height  int
}

// Model is the top-level Bubble Tea model for one grid session.
type Model struct {
	session *grid.Session
	cfg     Config
	st      styles

	mode     mode
	cursor   int // row position within the current page
	colIdx   int // active column, index into visible columns
	pendingG bool

	searchInput textinput.Model
	filterInput textinput.Model
	exprInput   textinput.Model
	exprSrc     string

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates the table UI over an existing session.
func NewModel(session *grid.Session, cfg Config) *Model {
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}
	width := cfg.Width
	if width <= 0 {
		width = 80
	}
	height := cfg.Height
	if height <= 0 {
		height = 24
	}

	si := textinput.New()
	si.Placeholder = "search all columns"
	si.CharLimit = 200
	si.SetWidth(width - 10)
	si.Prompt = "/ "

	fi := textinput.New()
	fi.Placeholder = "column operator value (e.g. salary > 50000)"
	fi.CharLimit = 200
	fi.SetWidth(width - 10)
	fi.Prompt = "f "

	ei := textinput.New()
	ei.Placeholder = `CEL predicate (e.g. _.dept == "eng")`
	ei.CharLimit = 500
	ei.SetWidth(width - 10)
	ei.Prompt = ": "

	return &Model{
		session:     session,
		cfg:         cfg,
		st:          newStyles(cfg.Theme, cfg.NoColor),
		searchInput: si,
		filterInput: fi,
		exprInput:   ei,
		width:       width,
		height:      height,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.SetWidth(m.width - 10)
		m.filterInput.SetWidth(m.width - 10)
		m.exprInput.SetWidth(m.width - 10)
		return m, nil

	case SearchSettledMsg:
		if msg.Term == m.session.SearchInput() {
			m.session.SetSearchTerm(msg.Term)
			m.cursor = 0
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeExpr:
			return m.updateExpr(msg)
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.status = ""
	m.statusErr = false

	action := BrowseKeyBindings[key]
	if m.pendingG {
		m.pendingG = false
		if key == "g" {
			action = ActionTop
		}
	}

	res := m.session.View()
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionDown:
		if m.cursor < len(res.Rows)-1 {
			m.cursor++
		}
	case ActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case ActionPendingG:
		m.pendingG = true
	case ActionTop:
		m.cursor = 0
	case ActionBottom:
		m.cursor = len(res.Rows) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case ActionNextPage:
		m.session.SetPage(res.Page + 1)
		m.cursor = 0
	case ActionPrevPage:
		m.session.SetPage(res.Page - 1)
		m.cursor = 0
	case ActionPageSize:
		m.cyclePageSize()
	case ActionNextCol:
		if n := len(m.session.VisibleColumns()); n > 0 {
			m.colIdx = (m.colIdx + 1) % n
		}
	case ActionPrevCol:
		if n := len(m.session.VisibleColumns()); n > 0 {
			m.colIdx = (m.colIdx - 1 + n) % n
		}
	case ActionSort:
		if col, ok := m.activeColumn(); ok {
			if col.Sortable {
				m.session.ToggleSort(col.Key)
				m.cursor = 0
			} else {
				m.setError(fmt.Sprintf("column %q is not sortable", col.Key))
			}
		}
	case ActionSearch:
		m.mode = modeSearch
		m.searchInput.SetValue(m.session.SearchInput())
		return m, m.searchInput.Focus()
	case ActionFilter:
		m.mode = modeFilter
		m.filterInput.SetValue("")
		return m, m.filterInput.Focus()
	case ActionClearCol:
		if col, ok := m.activeColumn(); ok {
			m.session.ClearConditions(col.Key)
			m.setStatus(fmt.Sprintf("cleared filters on %q", col.Key))
		}
	case ActionExpr:
		m.mode = modeExpr
		m.exprInput.SetValue(m.exprSrc)
		return m, m.exprInput.Focus()
	case ActionClearExpr:
		if m.exprSrc != "" {
			m.exprSrc = ""
			m.session.SetPredicate(nil)
			m.setStatus("expression filter cleared")
		}
	case ActionSelect:
		if i, ok := m.globalIndex(res); ok {
			m.session.Click(i)
		}
	case ActionRange:
		if i, ok := m.globalIndex(res); ok {
			m.session.RangeClick(i)
		}
	case ActionToggle:
		if i, ok := m.globalIndex(res); ok {
			m.session.ToggleClick(i)
		}
	case ActionSelectPage:
		m.session.SelectPage()
	case ActionClearPage:
		m.session.DeselectPage()
	case ActionClearSel:
		m.session.ClearSelection()
	case ActionHideCol:
		if col, ok := m.activeColumn(); ok {
			m.session.ToggleColumnVisible(col.Key)
			m.clampColIdx()
		}
	case ActionHelp:
		m.mode = modeHelp
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Apply directly; flushing through the settled-search hook would
		// Send from inside Update, which blocks the event loop.
		m.session.SetSearchTerm(m.searchInput.Value())
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.cursor = 0
		return m, nil
	case "esc":
		m.session.SetSearchTerm("")
		m.searchInput.SetValue("")
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Every keystroke updates the buffer; the pipeline sees the term only
	// after the quiet period.
	m.session.SetSearchInput(m.searchInput.Value())
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := m.filterInput.Value()
		m.mode = modeBrowse
		m.filterInput.Blur()
		if strings.TrimSpace(input) == "" {
			return m, nil
		}
		key, cond, err := ParseCondition(input, m.session.Columns())
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.session.AddCondition(key, cond)
		m.cursor = 0
		m.setStatus(fmt.Sprintf("filter added: %s", input))
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) updateExpr(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		src := strings.TrimSpace(m.exprInput.Value())
		m.mode = modeBrowse
		m.exprInput.Blur()
		if src == "" {
			m.exprSrc = ""
			m.session.SetPredicate(nil)
			return m, nil
		}
		p, err := expr.Compile(src)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.exprSrc = src
		m.session.SetPredicate(p.Func())
		m.cursor = 0
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.exprInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.exprInput, cmd = m.exprInput.Update(msg)
	return m, cmd
}

func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	if m.mode == modeHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

// renderTitle shows the app name plus the live search buffer or the active
// input prompt.
func (m *Model) renderTitle() string {
	name := m.cfg.AppName
	if name == "" {
		name = "gridx"
	}
	switch m.mode {
	case modeSearch:
		return m.searchInput.View()
	case modeFilter:
		return m.filterInput.View()
	case modeExpr:
		return m.exprInput.View()
	}

	parts := []string{m.st.header.Render(" " + name + " ")}
	if in := m.session.SearchInput(); in != "" {
		parts = append(parts, m.st.muted.Render("/"+in))
	}
	if m.exprSrc != "" {
		parts = append(parts, m.st.muted.Render(":"+m.exprSrc))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderTable() string {
	res := m.session.View()
	switch res.Empty {
	case grid.EmptyNoColumns:
		return m.st.muted.Render("No columns visible. Press H on a column to show it again, q to quit.")
	case grid.EmptyNoRows:
		return m.renderHeader(m.session.VisibleColumns(), nil) + "\n" +
			m.st.muted.Render("No rows match the current search and filters.")
	}

	cols := m.session.VisibleColumns()
	widths := m.columnWidths(cols, res.Rows)

	var b strings.Builder
	b.WriteString(m.renderHeaderWidths(cols, widths))
	b.WriteString("\n")

	for rowIdx, row := range res.Rows {
		global := res.Offset + rowIdx
		selected := m.session.Selected(global)

		marker := "  "
		if selected {
			marker = "✓ "
		}

		cells := make([]string, len(cols))
		for i, col := range cols {
			cell := formatter.Cell(row.FieldString(col.Key), col.Format)
			cells[i] = formatter.Pad(cell, widths[i], formatter.AlignRight(col.Format.Kind))
		}
		line := marker + strings.Join(cells, "  ")

		switch {
		case rowIdx == m.cursor:
			line = m.st.cursor.Render(line)
		case selected:
			line = m.st.selected.Render(line)
		}
		b.WriteString(line)
		if rowIdx < len(res.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderHeader(cols []grid.Column, rows []grid.Record) string {
	return m.renderHeaderWidths(cols, m.columnWidths(cols, rows))
}

func (m *Model) renderHeaderWidths(cols []grid.Column, widths []int) string {
	sortState := m.session.Sort()
	cells := make([]string, len(cols))
	for i, col := range cols {
		label := col.Header
		if col.Key == sortState.Key {
			switch sortState.Dir {
			case grid.DirAscending:
				label += " ▲"
			case grid.DirDescending:
				label += " ▼"
			}
		}
		if i == m.colIdx {
			label = "[" + label + "]"
		}
		cell := formatter.Pad(label, widths[i], false)
		if col.Key == sortState.Key && sortState.Dir != grid.DirNone {
			cells[i] = m.st.sorted.Render(cell)
		} else {
			cells[i] = m.st.header.Render(cell)
		}
	}
	return "  " + strings.Join(cells, "  ")
}

// columnWidths resolves per-column display widths: the configured hint
// wins, otherwise the widest of header and page cells, capped.
func (m *Model) columnWidths(cols []grid.Column, rows []grid.Record) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		w := lipgloss.Width(col.Header) + 4 // room for sort marker and brackets
		for _, row := range rows {
			if cw := lipgloss.Width(formatter.Cell(row.FieldString(col.Key), col.Format)); cw > w {
				w = cw
			}
		}
		if w > maxAutoColWidth {
			w = maxAutoColWidth
		}
		if w < minColWidth {
			w = minColWidth
		}
		widths[i] = w
	}
	return widths
}

func (m *Model) renderFooter() string {
	res := m.session.View()
	page := m.session.Page()

	parts := []string{
		fmt.Sprintf("%d rows", res.TotalRows),
		fmt.Sprintf("page %d/%d", res.Page, res.TotalPages),
		fmt.Sprintf("size %d", page.Size),
	}
	if n := m.session.SelectionCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	footer := m.st.footer.Render(strings.Join(parts, " · "))

	hint := m.st.muted.Render("?: help · q: quit")
	line := footer + "  " + hint
	if m.status != "" {
		style := m.st.muted
		if m.statusErr {
			style = m.st.errText
		}
		line += "\n" + style.Render(m.status)
	}
	return line
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"j/k, arrows", "move cursor"},
		{"gg / G", "first / last row on page"},
		{"n / p", "next / previous page"},
		{"z", "cycle page size"},
		{"tab / shift+tab", "choose active column"},
		{"s", "cycle sort on active column (asc → desc → off)"},
		{"/", "search all columns (debounced)"},
		{"f", "add filter: column operator value"},
		{"F", "clear filters on active column"},
		{":", "CEL expression filter"},
		{"E", "clear expression filter"},
		{"space", "select row (click)"},
		{"v", "extend selection to row (shift-click)"},
		{"x", "toggle row in selection (ctrl-click)"},
		{"a / A", "select / deselect current page"},
		{"c", "clear selection"},
		{"H", "hide active column"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.st.header.Render(" Keys "))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.st.sorted.Render(formatter.Pad(r[0], 16, false)), r[1]))
	}
	b.WriteString(m.st.muted.Render("press any key to close"))
	return b.String()
}

func (m *Model) activeColumn() (grid.Column, bool) {
	cols := m.session.VisibleColumns()
	if len(cols) == 0 {
		return grid.Column{}, false
	}
	if m.colIdx >= len(cols) {
		m.colIdx = len(cols) - 1
	}
	return cols[m.colIdx], true
}

// globalIndex maps the cursor to its index in the full filtered sequence.
func (m *Model) globalIndex(res grid.ViewResult) (int, bool) {
	if len(res.Rows) == 0 || m.cursor >= len(res.Rows) {
		return 0, false
	}
	return res.Offset + m.cursor, true
}

func (m *Model) cyclePageSize() {
	sizes := m.session.PageSizes()
	if len(sizes) == 0 {
		return
	}
	current := m.session.Page().Size
	next := sizes[0]
	for i, s := range sizes {
		if s == current {
			next = sizes[(i+1)%len(sizes)]
			break
		}
	}
	m.session.SetPageSize(next)
	m.cursor = 0
}

func (m *Model) clampCursor() {
	n := len(m.session.View().Rows)
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) clampColIdx() {
	if n := len(m.session.VisibleColumns()); m.colIdx >= n && n > 0 {
		m.colIdx = n - 1
	} else if n == 0 {
		m.colIdx = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}
