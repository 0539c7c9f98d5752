// Package mcp provides the Model Context Protocol server integration for dots.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/timeutil"
)

// Service adapts the dots service to transport friendly shapes.
type Service struct {
	App    *app.Service
	Policy countdown.Policy
}

// CountdownDTO is the countdown plus its rendered lines.
type CountdownDTO struct {
	countdown.Countdown
	Policy    countdown.Policy `json:"policy"`
	Headline  string           `json:"headline"`
	Secondary string           `json:"secondary,omitempty"`
	Progress  string           `json:"progress"`
}

// DayDTO describes one day: its slot on the grid and its editable draft.
type DayDTO struct {
	Slot  *grid.DaySlot `json:"slot,omitempty"`
	Draft app.Draft     `json:"draft"`
}

// FocusDTO is today's focus and optionally its history.
type FocusDTO struct {
	Focus   state.FocusRecord   `json:"focus"`
	History []state.FocusRecord `json:"history,omitempty"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service, policy countdown.Policy) *Service {
	return &Service{App: svc, Policy: policy}
}

func (s *Service) check() error {
	if s.App == nil {
		return errors.New("dots service is not configured")
	}
	return nil
}

// Countdown derives the countdown. An empty policy uses the configured one.
func (s *Service) Countdown(ctx context.Context, policy string) (CountdownDTO, error) {
	if err := s.check(); err != nil {
		return CountdownDTO{}, err
	}
	p := s.Policy
	if strings.TrimSpace(policy) != "" {
		var err error
		if p, err = countdown.ParsePolicy(policy); err != nil {
			return CountdownDTO{}, err
		}
	}
	if p == "" {
		p = countdown.DefaultPolicy
	}
	c, err := s.App.Countdown(ctx)
	if err != nil {
		return CountdownDTO{}, err
	}
	head, second := c.Lines(p)
	return CountdownDTO{Countdown: c, Policy: p, Headline: head, Secondary: second, Progress: c.PercentLine()}, nil
}

// Grid returns the year's slots, optionally only annotated ones or one status.
func (s *Service) Grid(ctx context.Context, status string, annotatedOnly bool) ([]grid.DaySlot, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	want := grid.Status(strings.ToLower(strings.TrimSpace(status)))
	switch want {
	case "", grid.StatusPast, grid.StatusToday, grid.StatusFuture:
	default:
		return nil, fmt.Errorf("unknown status %q", status)
	}

	slots, err := s.App.Grid(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]grid.DaySlot, 0, len(slots))
	for _, slot := range slots {
		if want != "" && slot.Status != want {
			continue
		}
		if annotatedOnly && slot.Note == "" && slot.Annotation == state.TypeNone {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// Day opens the day for date. The slot is set when date is in this year.
func (s *Service) Day(ctx context.Context, date string) (DayDTO, error) {
	if err := s.check(); err != nil {
		return DayDTO{}, err
	}
	d, err := s.App.OpenDate(ctx, strings.TrimSpace(date))
	if err != nil {
		return DayDTO{}, err
	}
	dto := DayDTO{Draft: d}
	if d.Year == s.App.Now().Year() {
		slots, err := s.App.Grid(ctx)
		if err != nil {
			return DayDTO{}, err
		}
		if slot, ok := grid.Slot(slots, d.Day); ok {
			dto.Slot = &slot
		}
	}
	return dto, nil
}

// SaveDay stores note and type on date. An empty type keeps the stored or
// suggested type; "none" stores the note untyped.
func (s *Service) SaveDay(ctx context.Context, date, note, typ string) (DayDTO, error) {
	if err := s.check(); err != nil {
		return DayDTO{}, err
	}
	d, err := s.App.OpenDate(ctx, strings.TrimSpace(date))
	if err != nil {
		return DayDTO{}, err
	}
	d.Note = note
	switch t := strings.ToLower(strings.TrimSpace(typ)); t {
	case "":
		if strings.TrimSpace(note) == "" {
			d.Type = state.TypeNone
		}
	case "none":
		d.Type = state.TypeNone
	default:
		d.Type = state.AnnotationType(t)
	}
	if err := s.App.Save(ctx, d); err != nil {
		return DayDTO{}, err
	}
	return s.Day(ctx, d.Date)
}

// DeleteDay removes the annotation on date.
func (s *Service) DeleteDay(ctx context.Context, date string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.App.DeleteDate(ctx, strings.TrimSpace(date))
}

// Annotations lists annotations between from and to, optionally of one type.
func (s *Service) Annotations(ctx context.Context, from, to, typ string) ([]app.Annotated, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := timeutil.ParseDate(bound); err != nil {
			return nil, err
		}
	}
	all, err := s.App.Annotations(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		return all, nil
	}
	want := state.AnnotationType(strings.ToLower(typ))
	if want == "none" {
		want = state.TypeNone
	}
	out := make([]app.Annotated, 0, len(all))
	for _, a := range all {
		if a.Type == want {
			out = append(out, a)
		}
	}
	return out, nil
}

// Focus returns today's focus, with history when asked.
func (s *Service) Focus(ctx context.Context, withHistory bool) (FocusDTO, error) {
	if err := s.check(); err != nil {
		return FocusDTO{}, err
	}
	f, err := s.App.Focus(ctx)
	if err != nil {
		return FocusDTO{}, err
	}
	dto := FocusDTO{Focus: f}
	if withHistory {
		if dto.History, err = s.App.FocusHistory(ctx); err != nil {
			return FocusDTO{}, err
		}
	}
	return dto, nil
}
