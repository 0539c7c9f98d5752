// Package style shows or changes how today's dot is drawn.
package style

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/state"
)

type Style struct {
	Service *app.Service
	// Style to switch to. Empty prints the current style.
	Style       state.TodayStyle
	Interactive bool
	Out         io.Writer
}

func (s *Style) Do(ctx context.Context) error {
	w := s.Out
	if w == nil {
		w = color.Output
	}

	if s.Interactive {
		picked, err := pick(ctx, s.Service)
		if err != nil {
			return err
		}
		s.Style = picked
	}

	if s.Style != "" {
		if err := s.Service.SetTodayStyle(ctx, s.Style); err != nil {
			return err
		}
	}

	current, err := s.Service.TodayStyle(ctx)
	if err != nil {
		return err
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	for _, v := range state.TodayStyles() {
		if v == current {
			_, _ = b.Fprintf(w, "* %s\n", v)
			continue
		}
		_, _ = f.Fprintf(w, "  %s\n", v)
	}
	if !current.Valid() {
		_, _ = b.Fprintf(w, "* %s (unknown)\n", current)
	}
	return nil
}

func pick(ctx context.Context, svc *app.Service) (state.TodayStyle, error) {
	current, err := svc.TodayStyle(ctx)
	if err != nil {
		return "", err
	}
	styles := state.TodayStyles()
	cursor := 0
	for i, v := range styles {
		if v == current {
			cursor = i
		}
	}
	sel := promptui.Select{
		Label:     "Today style",
		Items:     styles,
		CursorPos: cursor,
	}
	i, _, err := sel.Run()
	if err != nil {
		return "", fmt.Errorf("select style: %w", err)
	}
	return styles[i], nil
}
