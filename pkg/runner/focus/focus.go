// Package focus manages the single focus task of the day.
package focus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/printers"
)

// Action is what Focus does.
type Action string

const (
	Show  Action = "show"
	Set   Action = "set"
	Done  Action = "done"
	Clear Action = "clear"
)

type Focus struct {
	Service *app.Service
	Action  Action
	Text    string
	// History also prints archived focus records on show.
	History bool
	JSON    bool
	Out     io.Writer
}

func (f *Focus) Do(ctx context.Context) error {
	switch f.Action {
	case Set:
		if err := f.Service.SetFocus(ctx, f.Text); err != nil {
			return err
		}
	case Done:
		if _, err := f.Service.ToggleFocus(ctx); err != nil {
			return err
		}
	case Clear:
		if err := f.Service.ClearFocus(ctx); err != nil {
			return err
		}
	case Show, "":
	default:
		return fmt.Errorf("unknown focus action %q", f.Action)
	}
	return f.print(ctx)
}

func (f *Focus) print(ctx context.Context) error {
	current, err := f.Service.Focus(ctx)
	if err != nil {
		return err
	}
	w := f.Out
	if w == nil {
		w = color.Output
	}

	if f.JSON {
		out := map[string]any{"focus": current}
		if f.History {
			history, err := f.Service.FocusHistory(ctx)
			if err != nil {
				return err
			}
			out["history"] = history
		}
		return json.NewEncoder(w).Encode(out)
	}

	pp := &printers.PrettyPrint{Out: w}
	pp.Focus(current)
	if f.History {
		history, err := f.Service.FocusHistory(ctx)
		if err != nil {
			return err
		}
		pp.NewLine()
		pp.FocusHistory(history)
	}
	return nil
}
