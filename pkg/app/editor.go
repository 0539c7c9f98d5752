package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// Draft is the editable form of one day's annotation.
type Draft struct {
	Day  int                  `json:"day"`
	Year int                  `json:"year"`
	Date string               `json:"date"`
	Note string               `json:"note"`
	Type state.AnnotationType `json:"type"`
	// Existing is true when the draft was loaded from a stored annotation.
	Existing bool `json:"existing"`
}

// Open loads the annotation for day of year. Without a stored annotation the
// draft suggests journal for today and earlier and milestone for later days.
func (s *Service) Open(ctx context.Context, day, year int) (Draft, error) {
	date := timeutil.DateStringForDay(year, day)
	d := Draft{Day: day, Year: year, Date: date}
	today := timeutil.DateString(s.now())

	err := s.read(ctx, func(doc *state.State) {
		if a, ok := doc.DotsData[date]; ok {
			d.Note = a.Note
			d.Type = a.Type
			d.Existing = true
			return
		}
		d.Type = SuggestType(date, today)
	})
	return d, err
}

// OpenDate is Open keyed by a YYYY-MM-DD date.
func (s *Service) OpenDate(ctx context.Context, date string) (Draft, error) {
	year, day, err := timeutil.DayForDate(date)
	if err != nil {
		return Draft{}, err
	}
	return s.Open(ctx, day, year)
}

// SuggestType picks the default annotation type for date given today's date.
// Both are YYYY-MM-DD, which order lexically.
func SuggestType(date, today string) state.AnnotationType {
	if date > today {
		return state.TypeMilestone
	}
	return state.TypeJournal
}

// Save stores the draft. A draft with no note and no type deletes whatever is
// stored for its date.
func (s *Service) Save(ctx context.Context, d Draft) error {
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, d.Type)
	}
	date := d.Date
	if date == "" {
		date = timeutil.DateStringForDay(d.Year, d.Day)
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	a := state.DayAnnotation{Note: strings.TrimSpace(d.Note), Type: d.Type}
	if a.Empty() {
		return s.deleteDate(ctx, date)
	}
	return s.mutate(ctx, ChangeAnnotation, date, func(doc *state.State) error {
		doc.DotsData[date] = a
		return nil
	})
}

// Delete removes the annotation for day of year. Deleting a day without an
// annotation still persists and notifies.
func (s *Service) Delete(ctx context.Context, day, year int) error {
	return s.deleteDate(ctx, timeutil.DateStringForDay(year, day))
}

// DeleteDate is Delete keyed by a YYYY-MM-DD date.
func (s *Service) DeleteDate(ctx context.Context, date string) error {
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return s.deleteDate(ctx, date)
}

func (s *Service) deleteDate(ctx context.Context, date string) error {
	return s.mutate(ctx, ChangeAnnotation, date, func(doc *state.State) error {
		delete(doc.DotsData, date)
		return nil
	})
}

// Annotated pairs a stored annotation with its date.
type Annotated struct {
	Date string `json:"date"`
	state.DayAnnotation
}

// Annotations lists stored annotations with from <= date <= to, ordered by
// date. Empty bounds are open.
func (s *Service) Annotations(ctx context.Context, from, to string) ([]Annotated, error) {
	var out []Annotated
	err := s.read(ctx, func(doc *state.State) {
		for _, date := range doc.Dates() {
			if from != "" && date < from {
				continue
			}
			if to != "" && date > to {
				continue
			}
			out = append(out, Annotated{Date: date, DayAnnotation: doc.DotsData[date]})
		}
	})
	return out, err
}
