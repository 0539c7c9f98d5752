// Package scratch reads and writes the free text scratchpad.
package scratch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/printers"
)

type Action string

const (
	Show   Action = "show"
	Set    Action = "set"
	Append Action = "append"
)

type Scratch struct {
	Service *app.Service
	Action  Action
	Text    string
	JSON    bool
	Out     io.Writer
}

func (s *Scratch) Do(ctx context.Context) error {
	switch s.Action {
	case Set:
		if err := s.Service.SetScratchpad(ctx, s.Text); err != nil {
			return err
		}
	case Append:
		if err := s.Service.AppendScratchpad(ctx, s.Text); err != nil {
			return err
		}
	case Show, "":
	default:
		return fmt.Errorf("unknown scratch action %q", s.Action)
	}

	text, err := s.Service.Scratchpad(ctx)
	if err != nil {
		return err
	}
	w := s.Out
	if w == nil {
		w = color.Output
	}
	if s.JSON {
		return json.NewEncoder(w).Encode(map[string]string{"scratchpad": text})
	}
	pp := &printers.PrettyPrint{Out: w}
	pp.Scratchpad(text)
	return nil
}
