// Package grid derives the per-day display slots for the current year.
package grid

import (
	"fmt"
	"time"

	"tableflip.dev/dots/pkg/glyph"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// Status places a day relative to today.
type Status string

const (
	StatusPast   Status = "past"
	StatusToday  Status = "today"
	StatusFuture Status = "future"
)

// DaySlot is everything a presentation layer needs to draw one dot.
type DaySlot struct {
	Day        int                  `json:"day"`
	Date       string               `json:"date"`
	Status     Status               `json:"status"`
	Style      state.TodayStyle     `json:"style,omitempty"`
	Annotation state.AnnotationType `json:"annotation,omitempty"`
	Note       string               `json:"note,omitempty"`
	Marker     glyph.Marker         `json:"marker,omitempty"`
	Title      string               `json:"title"`
}

// Render returns one slot per day of now's year, slot i describing day i+1.
// It only reads s.
func Render(now time.Time, s *state.State) []DaySlot {
	year := now.Year()
	total := timeutil.TotalDays(year)
	today := timeutil.DayOfYear(now)

	var (
		style    = state.DefaultTodayStyle
		dotsData map[string]state.DayAnnotation
	)
	if s != nil {
		style = s.TodayStyle
		dotsData = s.DotsData
	}

	slots := make([]DaySlot, 0, total)
	for day := 1; day <= total; day++ {
		slot := DaySlot{
			Day:  day,
			Date: timeutil.DateStringForDay(year, day),
		}

		switch {
		case day < today:
			slot.Status = StatusPast
			slot.Title = fmt.Sprintf("Day %d (Completed)", day)
		case day == today:
			slot.Status = StatusToday
			slot.Style = style
			slot.Title = fmt.Sprintf("Day %d (Today)", day)
		default:
			slot.Status = StatusFuture
			slot.Title = fmt.Sprintf("Day %d", day)
		}

		if a, ok := dotsData[slot.Date]; ok {
			slot.Annotation = a.Type
			slot.Note = a.Note
			if slot.Note == "" && a.Type != state.TypeNone {
				slot.Note = string(a.Type)
			}
			if slot.Note != "" {
				slot.Title += " - " + slot.Note
			}
		}
		slot.Marker = glyph.MarkerFor(slot.Status == StatusToday, slot.Style, slot.Annotation)

		slots = append(slots, slot)
	}
	return slots
}

// Slot returns the slot for day from slots, or false when out of range.
func Slot(slots []DaySlot, day int) (DaySlot, bool) {
	if day < 1 || day > len(slots) {
		return DaySlot{}, false
	}
	return slots[day-1], true
}
