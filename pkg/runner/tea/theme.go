package teaui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/state"
)

// Theme centralizes Lip Gloss styles for the year view.
type Theme struct {
	Header HeaderTheme
	Grid   GridTheme
	Footer FooterTheme
	Panel  PanelTheme
}

// HeaderTheme styles the countdown lines above the grid.
type HeaderTheme struct {
	Headline  lipgloss.Style
	Secondary lipgloss.Style
}

// GridTheme styles the dots and the month labels.
type GridTheme struct {
	Month     lipgloss.Style
	Past      lipgloss.Style
	Today     lipgloss.Style
	Future    lipgloss.Style
	Milestone lipgloss.Style
	Journal   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles the selected day, the help box and their headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Faint lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	title := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)

	return Theme{
		Header: HeaderTheme{
			Headline:  title,
			Secondary: faint,
		},
		Grid: GridTheme{
			Month:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Past:      lipgloss.NewStyle(),
			Today:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			Future:    faint,
			Milestone: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			Journal:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		},
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: title,
			Faint: faint,
		},
	}
}

// Dot picks the style for one slot. Today wins over annotations.
func (g GridTheme) Dot(s grid.DaySlot) lipgloss.Style {
	switch {
	case s.Status == grid.StatusToday:
		if s.Style == state.StylePulse {
			return g.Today.Blink(true)
		}
		return g.Today
	case s.Annotation == state.TypeMilestone:
		return g.Milestone
	case s.Annotation == state.TypeJournal:
		return g.Journal
	case s.Status == grid.StatusFuture:
		return g.Future
	}
	return g.Past
}
