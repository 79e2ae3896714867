package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the table UI. Host apps can supply
// their own palette; the zero value plus NoColor renders plain text.
type Theme struct {
	HeaderFG   color.Color // Column header text
	HeaderBG   color.Color // Column header background
	SortedFG   color.Color // Active sort column header
	SelectedFG color.Color // Selected row foreground
	SelectedBG color.Color // Selected row background
	CursorBG   color.Color // Cursor row background
	FooterFG   color.Color // Footer/status text
	MutedFG    color.Color // Secondary text (counts, hints)
	ErrorFG    color.Color // Error messages in the status line
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		HeaderFG:   lipgloss.Color("12"),
		HeaderBG:   lipgloss.Color("236"),
		SortedFG:   lipgloss.Color("14"),
		SelectedFG: lipgloss.Color("0"),
		SelectedBG: lipgloss.Color("6"),
		CursorBG:   lipgloss.Color("238"),
		FooterFG:   lipgloss.Color("248"),
		MutedFG:    lipgloss.Color("240"),
		ErrorFG:    lipgloss.Color("9"),
	}
}

// styles resolves a theme into the lipgloss styles the view render uses.
// With noColor set every style collapses to plain or reverse-video text so
// state is still distinguishable on monochrome terminals.
type styles struct {
	header   lipgloss.Style
	sorted   lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	footer   lipgloss.Style
	muted    lipgloss.Style
	errText  lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	if noColor {
		return styles{
			header:   lipgloss.NewStyle().Bold(true),
			sorted:   lipgloss.NewStyle().Bold(true).Underline(true),
			cursor:   lipgloss.NewStyle().Reverse(true),
			selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			footer:   lipgloss.NewStyle(),
			muted:    lipgloss.NewStyle().Faint(true),
			errText:  lipgloss.NewStyle().Bold(true),
		}
	}
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(th.HeaderFG).Background(th.HeaderBG),
		sorted:   lipgloss.NewStyle().Bold(true).Foreground(th.SortedFG).Background(th.HeaderBG),
		cursor:   lipgloss.NewStyle().Background(th.CursorBG),
		selected: lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG),
		footer:   lipgloss.NewStyle().Foreground(th.FooterFG),
		muted:    lipgloss.NewStyle().Foreground(th.MutedFG),
		errText:  lipgloss.NewStyle().Foreground(th.ErrorFG),
	}
}
