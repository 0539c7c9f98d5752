package glyph

import (
	"tableflip.dev/dots/pkg/state"
)

// Glyph describes one symbol used when drawing the year.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Order   int
	Printed bool
}

func (g Glyph) String() string {
	return g.Symbol
}

// Marker is the glyph hint a presentation layer draws inside a dot.
type Marker string

const (
	MarkerNone      Marker = ""
	MarkerHourglass Marker = "⏳"
	MarkerJournal   Marker = "✍️"
)

// Dot symbols for terminals that cannot color a whole cell.
const (
	DotPast      = "●"
	DotFuture    = "○"
	DotToday     = "◉"
	DotMilestone = "◆"
)

// DefaultDots returns the legend for plain dots, in display order.
func DefaultDots() []Glyph {
	return []Glyph{
		{Key: "past", Symbol: DotPast, Meaning: "day already lived", Order: 1, Printed: true},
		{Key: "today", Symbol: DotToday, Meaning: "today", Order: 2, Printed: true},
		{Key: "future", Symbol: DotFuture, Meaning: "day still ahead", Order: 3, Printed: true},
		{Key: "milestone", Symbol: DotMilestone, Meaning: "milestone", Order: 4, Printed: true},
		{Key: "journal", Symbol: string(MarkerJournal), Meaning: "journal entry", Order: 5, Printed: true},
	}
}

// DefaultStyles returns the legend for the selectable today styles.
func DefaultStyles() []Glyph {
	return []Glyph{
		{Key: string(state.StyleOrange), Symbol: DotToday, Meaning: "orange dot", Order: 1, Printed: true},
		{Key: string(state.StyleHourglass), Symbol: string(MarkerHourglass), Meaning: "hourglass", Order: 2, Printed: true},
		{Key: string(state.StylePulse), Symbol: DotToday, Meaning: "pulsing dot", Order: 3, Printed: true},
	}
}

// ByOrder sorts glyphs for display.
type ByOrder []Glyph

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }

// MarkerFor picks the marker for a dot. Journal annotations win over the
// hourglass so a journaled today still shows the pen.
func MarkerFor(today bool, style state.TodayStyle, typ state.AnnotationType) Marker {
	if typ == state.TypeJournal {
		return MarkerJournal
	}
	if today && style == state.StyleHourglass {
		return MarkerHourglass
	}
	return MarkerNone
}
