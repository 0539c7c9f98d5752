// Package state defines the single persisted document behind dots: today's
// marker style, the scratchpad, per-day annotations and the daily focus.
package state

import (
	"encoding/json"
	"sort"
)

// TodayStyle selects how the current day's dot is drawn.
type TodayStyle string

const (
	StyleOrange    TodayStyle = "orange"
	StyleHourglass TodayStyle = "hourglass"
	StylePulse     TodayStyle = "pulse"
)

// DefaultTodayStyle is used when nothing has been chosen yet.
const DefaultTodayStyle = StyleOrange

// TodayStyles lists the styles a user can pick, in display order.
func TodayStyles() []TodayStyle {
	return []TodayStyle{StyleOrange, StyleHourglass, StylePulse}
}

// Valid reports whether s is one of TodayStyles.
func (s TodayStyle) Valid() bool {
	for _, v := range TodayStyles() {
		if s == v {
			return true
		}
	}
	return false
}

// AnnotationType tags a day note. The empty value means untyped.
type AnnotationType string

const (
	TypeNone      AnnotationType = ""
	TypeMilestone AnnotationType = "milestone"
	TypeJournal   AnnotationType = "journal"
)

// Valid reports whether t is untyped, milestone or journal.
func (t AnnotationType) Valid() bool {
	switch t {
	case TypeNone, TypeMilestone, TypeJournal:
		return true
	}
	return false
}

func (t AnnotationType) String() string {
	if t == TypeNone {
		return "none"
	}
	return string(t)
}

// DayAnnotation is the note attached to one calendar date.
type DayAnnotation struct {
	Note string         `json:"note"`
	Type AnnotationType `json:"type"`
}

// Empty reports whether the annotation carries nothing worth persisting.
func (a DayAnnotation) Empty() bool {
	return a.Note == "" && a.Type == TypeNone
}

// FocusRecord is the single task chosen for one day. Date uses
// timeutil.LayoutDay.
type FocusRecord struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"`
}

// IsSet reports whether a focus task has been chosen.
func (f FocusRecord) IsSet() bool {
	return f.Text != ""
}

// State is the whole persisted document. It is saved and loaded as a unit.
type State struct {
	TodayStyle   TodayStyle               `json:"todayStyle"`
	Scratchpad   string                   `json:"scratchpad"`
	DotsData     map[string]DayAnnotation `json:"dotsData"`
	DailyFocus   FocusRecord              `json:"dailyFocus"`
	FocusHistory []FocusRecord            `json:"focusHistory"`
}

// Default returns a fresh document with every field at its default.
func Default() *State {
	return &State{
		TodayStyle:   DefaultTodayStyle,
		Scratchpad:   "",
		DotsData:     make(map[string]DayAnnotation),
		DailyFocus:   FocusRecord{},
		FocusHistory: []FocusRecord{},
	}
}

// Decode merges the stored JSON document over the defaults, one top-level
// field at a time. Fields missing from data keep their default; fields that
// are present replace the default wholesale, nested maps included.
func Decode(data []byte) (*State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	s := Default()
	targets := map[string]any{
		"todayStyle":   &s.TodayStyle,
		"scratchpad":   &s.Scratchpad,
		"dotsData":     &s.DotsData,
		"dailyFocus":   &s.DailyFocus,
		"focusHistory": &s.FocusHistory,
	}
	for name, target := range targets {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
	}

	// A stored null would otherwise leave nil collections behind.
	if s.DotsData == nil {
		s.DotsData = make(map[string]DayAnnotation)
	}
	if s.FocusHistory == nil {
		s.FocusHistory = []FocusRecord{}
	}
	return s, nil
}

// Encode serializes the entire document.
func Encode(s *State) ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy so callers can read without holding a lock.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.DotsData = make(map[string]DayAnnotation, len(s.DotsData))
	for k, v := range s.DotsData {
		out.DotsData[k] = v
	}
	out.FocusHistory = append([]FocusRecord{}, s.FocusHistory...)
	return &out
}

// Dates returns the annotated dates in ascending order.
func (s *State) Dates() []string {
	dates := make([]string, 0, len(s.DotsData))
	for d := range s.DotsData {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
