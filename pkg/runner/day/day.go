// Package day reads and edits the annotation of a single day.
package day

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/printers"
	"tableflip.dev/dots/pkg/state"
)

// Get prints one day's annotation or the suggestion for an empty day.
type Get struct {
	Service *app.Service
	Year    int
	Day     int
	JSON    bool
	Out     io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	d, err := g.Service.Open(ctx, g.Day, g.Year)
	if err != nil {
		return err
	}
	return printDraft(out(g.Out), d, g.JSON)
}

// Set stores a note on one day. An empty note with no type removes it.
type Set struct {
	Service *app.Service
	Year    int
	Day     int
	Note    string
	Type    state.AnnotationType
	// TypeSet is true when Type was chosen explicitly; otherwise an existing
	// type or the suggested one is kept.
	TypeSet     bool
	Interactive bool
	JSON        bool
	Out         io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	d, err := s.Service.Open(ctx, s.Day, s.Year)
	if err != nil {
		return err
	}

	if s.Interactive {
		if err := prompt(&d); err != nil {
			return err
		}
	} else {
		d.Note = s.Note
		if s.TypeSet {
			d.Type = s.Type
		}
		if strings.TrimSpace(d.Note) == "" && !s.TypeSet {
			// A bare "day set" clears the day rather than storing only a type.
			d.Type = state.TypeNone
		}
	}

	if err := s.Service.Save(ctx, d); err != nil {
		return err
	}
	saved, err := s.Service.Open(ctx, s.Day, s.Year)
	if err != nil {
		return err
	}
	return printDraft(out(s.Out), saved, s.JSON)
}

// Delete removes one day's annotation.
type Delete struct {
	Service *app.Service
	Year    int
	Day     int
}

func (d *Delete) Do(ctx context.Context) error {
	return d.Service.Delete(ctx, d.Day, d.Year)
}

func prompt(d *app.Draft) error {
	types := []state.AnnotationType{state.TypeJournal, state.TypeMilestone, state.TypeNone}
	cursor := 0
	for i, t := range types {
		if t == d.Type {
			cursor = i
		}
	}

	sel := promptui.Select{
		Label:     fmt.Sprintf("Type for %s", d.Date),
		Items:     types,
		CursorPos: cursor,
	}
	i, _, err := sel.Run()
	if err != nil {
		return err
	}
	d.Type = types[i]

	p := promptui.Prompt{
		Label:     "Note",
		Default:   d.Note,
		AllowEdit: true,
		Validate: func(input string) error {
			if d.Type == state.TypeNone && strings.TrimSpace(input) == "" {
				return errors.New("an untyped day needs a note; pick a type or delete the day")
			}
			return nil
		},
	}
	note, err := p.Run()
	if err != nil {
		return err
	}
	d.Note = note
	return nil
}

func printDraft(w io.Writer, d app.Draft, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(d)
	}
	pp := &printers.PrettyPrint{Out: w}
	pp.Draft(d)
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
