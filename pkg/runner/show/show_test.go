package show

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	seed := state.Default()
	seed.DotsData["2025-06-01"] = state.DayAnnotation{Note: "Trip", Type: state.TypeMilestone}
	now := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	svc := app.New(store.NewMemory(seed), app.WithClock(func() time.Time { return now }))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer
	s := &Show{Service: newService(t), Policy: countdown.PolicyReplace, JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got.Days) != 365 || got.Days[120].Status != grid.StatusToday {
		t.Fatalf("unexpected days: %d, today %#v", len(got.Days), got.Days[120])
	}
	if got.Headline != "31 Days until Trip" || got.Secondary != "244 Days Remaining" {
		t.Fatalf("unexpected lines %q / %q", got.Headline, got.Secondary)
	}
	if got.TodayStyle != state.StyleOrange {
		t.Fatalf("unexpected style %q", got.TodayStyle)
	}
}

func TestShowPretty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	s := &Show{Service: newService(t), Policy: countdown.PolicySeparate, Legend: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("show: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"244 Days Remaining\n31 Days until Trip\n", "Jan ", "Dec ", "Focus: none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
