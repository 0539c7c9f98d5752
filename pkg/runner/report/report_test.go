package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/store"
)

func TestReportWindow(t *testing.T) {
	seed := state.Default()
	seed.DotsData["2025-04-24"] = state.DayAnnotation{Note: "outside", Type: state.TypeJournal}
	seed.DotsData["2025-04-25"] = state.DayAnnotation{Note: "inside", Type: state.TypeJournal}
	seed.DotsData["2025-05-01"] = state.DayAnnotation{Note: "today", Type: state.TypeJournal}
	now := time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	svc := app.New(store.NewMemory(seed), app.WithClock(func() time.Time { return now }))

	var buf bytes.Buffer
	r := &Report{Service: svc, Window: "1w", JSON: true, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}

	var got struct {
		Window string `json:"window"`
		Since  string `json:"since"`
		Total  int    `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Window != "1w" || got.Since != "2025-04-25" || got.Total != 2 {
		t.Fatalf("unexpected report %#v", got)
	}
}

func TestReportRejectsBadWindow(t *testing.T) {
	r := &Report{Service: app.New(store.NewMemory(nil)), Window: "3h", Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error for hour window")
	}
}
