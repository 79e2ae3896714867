package ui

import (
	"strings"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// RenderSnapshot renders a single frame of the table UI as plain text, for
// non-interactive output and tests. The frame matches what the interactive
// view would show for the session's current state.
func RenderSnapshot(session *grid.Session, cfg Config) string {
	m := NewModel(session, cfg)

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	return b.String()
}
