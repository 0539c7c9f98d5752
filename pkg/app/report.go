package app

import (
	"context"
	"time"

	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// ReportSection groups annotations of one type.
type ReportSection struct {
	Type    state.AnnotationType `json:"type"`
	Entries []Annotated          `json:"entries"`
}

// ReportResult summarizes what was recorded between two dates.
type ReportResult struct {
	Since    string              `json:"since"`
	Until    string              `json:"until"`
	Sections []ReportSection     `json:"sections,omitempty"`
	Focus    []state.FocusRecord `json:"focus,omitempty"`
	Total    int                 `json:"total"`
}

// reportOrder is the section order of a report.
var reportOrder = []state.AnnotationType{state.TypeMilestone, state.TypeJournal, state.TypeNone}

// Report returns annotations and focus records dated within [since, until],
// compared by calendar day.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	from, to := timeutil.DateString(since), timeutil.DateString(until)
	result := ReportResult{Since: from, Until: to}

	annotations, err := s.Annotations(ctx, from, to)
	if err != nil {
		return ReportResult{}, err
	}
	grouped := make(map[state.AnnotationType][]Annotated)
	for _, a := range annotations {
		grouped[a.Type] = append(grouped[a.Type], a)
		result.Total++
	}
	for _, typ := range reportOrder {
		if entries := grouped[typ]; len(entries) > 0 {
			result.Sections = append(result.Sections, ReportSection{Type: typ, Entries: entries})
		}
	}

	history, err := s.FocusHistory(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	current, err := s.Focus(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	if current.IsSet() {
		history = append(history, current)
	}
	for _, f := range history {
		when, err := time.Parse(timeutil.LayoutDay, f.Date)
		if err != nil {
			continue
		}
		if d := timeutil.DateString(when); d < from || d > to {
			continue
		}
		result.Focus = append(result.Focus, f)
	}
	return result, nil
}
