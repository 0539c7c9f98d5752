package printers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/state"
)

// PrettyPrint writes human readable output for the dots commands.
type PrettyPrint struct {
	Out    io.Writer
	Policy countdown.Policy
	// Width wraps long free text. Zero means 80.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Countdown prints the headline, the secondary line and the percent done.
func (pp *PrettyPrint) Countdown(c countdown.Countdown) {
	head, second := c.Lines(pp.Policy)
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = b.Fprintln(pp.out(), head)
	if second != "" {
		_, _ = f.Fprintln(pp.out(), second)
	}
	_, _ = f.Fprintf(pp.out(), "%d %s complete (day %d of %d)\n", c.Year, c.PercentLine(), c.Day, c.TotalDays)
}

// Focus prints today's focus, if any.
func (pp *PrettyPrint) Focus(f state.FocusRecord) {
	l := color.New(color.Faint)
	if !f.IsSet() {
		_, _ = l.Fprintln(pp.out(), "Focus: none")
		return
	}
	_, _ = l.Fprint(pp.out(), "Focus: ")
	if f.Completed {
		_, _ = color.New(color.CrossedOut, color.Faint).Fprint(pp.out(), f.Text)
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), " ✓")
		return
	}
	_, _ = color.New(color.Bold).Fprintln(pp.out(), f.Text)
}

// FocusHistory lists archived focus records.
func (pp *PrettyPrint) FocusHistory(history []state.FocusRecord) {
	if len(history) == 0 {
		return
	}
	pp.TitleWithCount("Past focus", len(history))
	d := color.New(color.Faint)
	for _, f := range history {
		mark := " "
		if f.Completed {
			mark = "✓"
		}
		_, _ = d.Fprintf(pp.out(), "%s  ", f.Date)
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", mark, f.Text)
	}
}

// Scratchpad prints the scratchpad wrapped to the configured width.
func (pp *PrettyPrint) Scratchpad(text string) {
	if strings.TrimSpace(text) == "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), " empty")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(text, pp.width()))
}

// Draft prints one day's annotation.
func (pp *PrettyPrint) Draft(d app.Draft) {
	when := d.Date
	if t, err := time.Parse("2006-01-02", d.Date); err == nil {
		when = t.Format("Monday, January 2 2006")
	}
	pp.Title(fmt.Sprintf("Day %d - %s", d.Day, when))
	if !d.Existing {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), " no note (suggested type: %s)\n", d.Type)
		return
	}
	_, _ = typeColor(d.Type).Fprintf(pp.out(), "[%s] ", d.Type)
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(d.Note, pp.width()))
}

// Annotations lists annotations one per line.
func (pp *PrettyPrint) Annotations(items ...app.Annotated) {
	if len(items) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	d := color.New(color.Faint)
	for _, a := range items {
		_, _ = d.Fprintf(pp.out(), "%s  ", a.Date)
		_, _ = typeColor(a.Type).Fprintf(pp.out(), "%-9s ", a.Type)
		_, _ = fmt.Fprintln(pp.out(), a.Note)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Report prints a report grouped by annotation type.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.Title(fmt.Sprintf("%s to %s", r.Since, r.Until))
	if r.Total == 0 && len(r.Focus) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " nothing recorded\n\n")
		return
	}
	for _, section := range r.Sections {
		pp.TitleWithCount(sectionTitle(section.Type), len(section.Entries))
		pp.Annotations(section.Entries...)
	}
	if len(r.Focus) > 0 {
		pp.FocusHistory(r.Focus)
	}
}

func sectionTitle(t state.AnnotationType) string {
	switch t {
	case state.TypeMilestone:
		return "Milestones"
	case state.TypeJournal:
		return "Journal"
	}
	return "Notes"
}

func typeColor(t state.AnnotationType) *color.Color {
	switch t {
	case state.TypeMilestone:
		return color.New(color.FgHiMagenta)
	case state.TypeJournal:
		return color.New(color.FgCyan)
	}
	return color.New(color.Faint)
}
