package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/glyph"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/state"
)

// orange is xterm-256 color 208.
var orange = []color.Attribute{38, 5, 208}

const monthLabel = len("Sep ")

// Grid prints the year one month per row.
func (pp *PrettyPrint) Grid(slots []grid.DaySlot) {
	l := color.New(color.Faint)
	var month time.Month
	for _, s := range slots {
		t, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		if t.Month() != month {
			if month != 0 {
				_, _ = fmt.Fprintln(pp.out(), "")
			}
			month = t.Month()
			_, _ = l.Fprintf(pp.out(), "%-*s", monthLabel, month.String()[:3])
		}
		_, _ = DotColor(s).Fprint(pp.out(), DotSymbol(s))
		_, _ = fmt.Fprint(pp.out(), " ")
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// Legend explains the marks drawn by Grid.
func (pp *PrettyPrint) Legend(style state.TodayStyle) {
	parts := make([]string, 0, len(glyph.DefaultDots()))
	for _, g := range glyph.DefaultDots() {
		symbol := g.Symbol
		if g.Key == "today" {
			symbol = DotSymbol(grid.DaySlot{Status: grid.StatusToday, Style: style,
				Marker: glyph.MarkerFor(true, style, state.TypeNone)})
		}
		parts = append(parts, fmt.Sprintf("%s %s", symbol, g.Key))
	}
	_, _ = color.New(color.Faint).Fprintln(pp.out(), strings.Join(parts, "   "))
}

// DotSymbol picks the character for a slot.
func DotSymbol(s grid.DaySlot) string {
	if s.Marker != glyph.MarkerNone {
		return string(s.Marker)
	}
	if s.Annotation == state.TypeMilestone {
		return glyph.DotMilestone
	}
	switch s.Status {
	case grid.StatusPast:
		return glyph.DotPast
	case grid.StatusToday:
		return glyph.DotToday
	}
	return glyph.DotFuture
}

// DotColor picks the color for a slot. Annotation colors apply regardless of
// status.
func DotColor(s grid.DaySlot) *color.Color {
	switch {
	case s.Status == grid.StatusToday && s.Style == state.StylePulse:
		return color.New(append([]color.Attribute{color.BlinkSlow}, orange...)...)
	case s.Status == grid.StatusToday:
		return color.New(orange...)
	case s.Annotation == state.TypeMilestone:
		return color.New(color.FgHiMagenta)
	case s.Annotation == state.TypeJournal:
		return color.New(color.FgCyan)
	case s.Status == grid.StatusPast:
		return color.New(color.FgWhite)
	}
	return color.New(color.Faint)
}
