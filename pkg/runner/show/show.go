// Package show prints the year grid with the countdown and today's focus.
package show

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/printers"
	"tableflip.dev/dots/pkg/state"
)

// Show renders the whole year.
type Show struct {
	Service *app.Service
	Policy  countdown.Policy
	JSON    bool
	// Legend adds the marker legend under the grid.
	Legend bool
	Out    io.Writer
}

// Snapshot is the JSON shape of show.
type Snapshot struct {
	Countdown  countdown.Countdown `json:"countdown"`
	Headline   string              `json:"headline"`
	Secondary  string              `json:"secondary,omitempty"`
	Focus      state.FocusRecord   `json:"focus"`
	TodayStyle state.TodayStyle    `json:"todayStyle"`
	Days       []grid.DaySlot      `json:"days"`
}

func (s *Show) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Show) Do(ctx context.Context) error {
	slots, err := s.Service.Grid(ctx)
	if err != nil {
		return err
	}
	c, err := s.Service.Countdown(ctx)
	if err != nil {
		return err
	}
	focus, err := s.Service.Focus(ctx)
	if err != nil {
		return err
	}
	style, err := s.Service.TodayStyle(ctx)
	if err != nil {
		return err
	}

	if s.JSON {
		head, second := c.Lines(s.Policy)
		enc := json.NewEncoder(s.out())
		enc.SetIndent("", "  ")
		return enc.Encode(Snapshot{
			Countdown:  c,
			Headline:   head,
			Secondary:  second,
			Focus:      focus,
			TodayStyle: style,
			Days:       slots,
		})
	}

	pp := &printers.PrettyPrint{Out: s.out(), Policy: s.Policy}
	pp.Countdown(c)
	pp.NewLine()
	pp.Grid(slots)
	if s.Legend {
		pp.Legend(style)
		pp.NewLine()
	}
	pp.Focus(focus)
	return nil
}
