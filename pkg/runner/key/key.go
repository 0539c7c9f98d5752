// Package key provides CLI helpers to display the dots legend.
package key

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dots/pkg/glyph"
)

// Key prints a glyph legend describing dots and today styles.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the dot and style keys.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")

	k.Key(ctx, "Dots", printed(glyph.DefaultDots()))
	_, _ = fmt.Fprintln(k.out(), "")

	k.Key(ctx, "Today styles", printed(glyph.DefaultStyles()))
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders one glyph table under title.
func (k *Key) Key(_ context.Context, title string, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint(title), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol+" "+v.Key, v.Meaning)
	}

	_, _ = fmt.Fprintln(k.out(), tbl)
}

func printed(all []glyph.Glyph) []glyph.Glyph {
	out := make([]glyph.Glyph, 0, len(all))
	for _, v := range all {
		if v.Printed {
			out = append(out, v)
		}
	}
	sort.Sort(glyph.ByOrder(out))
	return out
}
