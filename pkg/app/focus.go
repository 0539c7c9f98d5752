package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// CheckNewDay resets a focus record that belongs to another day. A stale
// record that had text is archived to the focus history first. Load runs it;
// long-lived callers can run it again when they notice the date moved.
func (s *Service) CheckNewDay(ctx context.Context) (bool, error) {
	reset := false
	err := s.mutate(ctx, ChangeFocus, "", func(doc *state.State) error {
		if !s.rollover(doc) {
			return errUnchanged
		}
		reset = true
		return nil
	})
	return reset, err
}

// rollover resets doc's focus when it belongs to another day and reports
// whether it did.
func (s *Service) rollover(doc *state.State) bool {
	today := timeutil.DayString(s.now())
	if doc.DailyFocus.Date == today {
		return false
	}
	if doc.DailyFocus.IsSet() {
		doc.FocusHistory = append(doc.FocusHistory, doc.DailyFocus)
	}
	s.log.Info("daily focus reset",
		zap.String("stale", doc.DailyFocus.Date),
		zap.String("today", today))
	doc.DailyFocus = state.FocusRecord{Date: today}
	return true
}

// Focus returns today's focus record.
func (s *Service) Focus(ctx context.Context) (state.FocusRecord, error) {
	var f state.FocusRecord
	err := s.read(ctx, func(doc *state.State) {
		f = doc.DailyFocus
	})
	return f, err
}

// FocusHistory returns archived focus records, oldest first.
func (s *Service) FocusHistory(ctx context.Context) ([]state.FocusRecord, error) {
	var out []state.FocusRecord
	err := s.read(ctx, func(doc *state.State) {
		out = append([]state.FocusRecord{}, doc.FocusHistory...)
	})
	return out, err
}

// SetFocus makes text today's focus, not yet completed.
func (s *Service) SetFocus(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyFocus
	}
	today := timeutil.DayString(s.now())
	return s.mutate(ctx, ChangeFocus, "", func(doc *state.State) error {
		doc.DailyFocus = state.FocusRecord{Text: text, Date: today}
		return nil
	})
}

// ToggleFocus flips completion of today's focus and returns the new record.
// Without a focus it does nothing.
func (s *Service) ToggleFocus(ctx context.Context) (state.FocusRecord, error) {
	var out state.FocusRecord
	err := s.mutate(ctx, ChangeFocus, "", func(doc *state.State) error {
		if !doc.DailyFocus.IsSet() {
			out = doc.DailyFocus
			return errUnchanged
		}
		doc.DailyFocus.Completed = !doc.DailyFocus.Completed
		out = doc.DailyFocus
		return nil
	})
	return out, err
}

// ClearFocus empties today's focus.
func (s *Service) ClearFocus(ctx context.Context) error {
	today := timeutil.DayString(s.now())
	return s.mutate(ctx, ChangeFocus, "", func(doc *state.State) error {
		doc.DailyFocus = state.FocusRecord{Date: today}
		return nil
	})
}
