package ui

import (
	"io"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/gridx/pkg/grid"
)

// Run starts the Bubble Tea program over a session, routing settled search
// terms from the debounce timer back through the event loop so they are
// applied on the update goroutine. Extra tea.ProgramOption values can
// override IO for tests.
func Run(session *grid.Session, cfg Config, opts ...tea.ProgramOption) error {
	m := NewModel(session, cfg)
	prog := tea.NewProgram(m, opts...)
	session.SetOnSearch(func(term string) { prog.Send(SearchSettledMsg{Term: term}) })
	_, err := prog.Run()
	return err
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
