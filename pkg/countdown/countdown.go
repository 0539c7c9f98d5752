// Package countdown derives the days-remaining summary and the nearest
// upcoming milestone.
package countdown

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// Policy decides how a milestone countdown shares space with the
// days-remaining headline.
type Policy string

const (
	// PolicySeparate keeps "N Days Remaining" as the headline and shows the
	// milestone on a second line.
	PolicySeparate Policy = "separate"
	// PolicyReplace promotes the milestone line to the headline.
	PolicyReplace Policy = "replace"
)

// DefaultPolicy is used when nothing is configured.
const DefaultPolicy = PolicySeparate

// ParsePolicy accepts a policy name, case-insensitively. Empty means default.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPolicy, nil
	case PolicySeparate, PolicyReplace:
		return p, nil
	}
	return "", fmt.Errorf("countdown: unknown policy %q (want %s or %s)", s, PolicySeparate, PolicyReplace)
}

// Milestone is the nearest upcoming milestone.
type Milestone struct {
	Date string `json:"date"`
	Note string `json:"note"`
	Days int    `json:"days"`
}

// Label is the note, or "Milestone" when the note is empty.
func (m Milestone) Label() string {
	if m.Note == "" {
		return "Milestone"
	}
	return m.Note
}

// Countdown summarizes how far through the year now is.
type Countdown struct {
	Year          int        `json:"year"`
	Day           int        `json:"day"`
	TotalDays     int        `json:"totalDays"`
	DaysRemaining int        `json:"daysRemaining"`
	Percent       float64    `json:"percent"`
	Milestone     *Milestone `json:"milestone,omitempty"`
}

// Derive computes the countdown for now from s. It only reads s.
func Derive(now time.Time, s *state.State) Countdown {
	year := now.Year()
	total := timeutil.TotalDays(year)
	day := timeutil.DayOfYear(now)

	c := Countdown{
		Year:          year,
		Day:           day,
		TotalDays:     total,
		DaysRemaining: total - day,
		Percent:       timeutil.PercentComplete(day, total),
	}
	if s != nil {
		c.Milestone = nearest(timeutil.DateString(now), s)
	}
	return c
}

// nearest walks dates in ascending order, so the first minimum wins ties.
func nearest(today string, s *state.State) *Milestone {
	var best *Milestone
	for _, date := range s.Dates() {
		a := s.DotsData[date]
		if a.Type != state.TypeMilestone || date <= today {
			continue
		}
		days, err := timeutil.DaysBetween(today, date)
		if err != nil || days <= 0 {
			continue
		}
		if best == nil || days < best.Days {
			best = &Milestone{Date: date, Note: a.Note, Days: days}
		}
	}
	return best
}

// RemainingLine is the plain days-remaining text.
func (c Countdown) RemainingLine() string {
	return fmt.Sprintf("%d Days Remaining", c.DaysRemaining)
}

// MilestoneLine is the milestone text, or empty when there is none.
func (c Countdown) MilestoneLine() string {
	if c.Milestone == nil {
		return ""
	}
	return fmt.Sprintf("%d Days until %s", c.Milestone.Days, c.Milestone.Label())
}

// PercentLine renders the progress with one decimal.
func (c Countdown) PercentLine() string {
	return fmt.Sprintf("%.1f%%", c.Percent)
}

// Lines returns the headline and the secondary line under policy. The
// secondary line is empty when there is nothing more to show.
func (c Countdown) Lines(policy Policy) (headline, secondary string) {
	if c.Milestone == nil {
		return c.RemainingLine(), ""
	}
	if policy == PolicyReplace {
		return c.MilestoneLine(), c.RemainingLine()
	}
	return c.RemainingLine(), c.MilestoneLine()
}
