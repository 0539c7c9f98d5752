// Package report lists what was recorded over a recent window.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/printers"
	"tableflip.dev/dots/pkg/timeutil"
)

type Report struct {
	Service *app.Service
	// Window is a span like "1w" or "10d", ending today.
	Window string
	JSON   bool
	Out    io.Writer
}

func (r *Report) Do(ctx context.Context) error {
	days, label, err := timeutil.ParseWindow(r.Window)
	if err != nil {
		return err
	}
	until := r.Service.Now()
	// A one day window is just today.
	since := until.AddDate(0, 0, -(days - 1))

	result, err := r.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}

	w := r.Out
	if w == nil {
		w = color.Output
	}
	if r.JSON {
		return json.NewEncoder(w).Encode(struct {
			Window string `json:"window"`
			app.ReportResult
		}{Window: label, ReportResult: result})
	}

	_, _ = color.New(color.Faint).Fprintf(w, "Report · last %s · generated %s\n", label, until.Format(time.Kitchen))
	pp := &printers.PrettyPrint{Out: w}
	pp.Report(result)
	if result.Total == 0 && len(result.Focus) == 0 {
		_, _ = fmt.Fprintln(w, "Try a longer --window.")
	}
	return nil
}
