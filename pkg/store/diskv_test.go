package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/dots/pkg/state"
)

func TestLoadMissingDocumentReturnsDefaults(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	got := p.Load(context.Background())
	if diff := cmp.Diff(state.Default(), got); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	s := state.Default()
	s.TodayStyle = state.StyleHourglass
	s.Scratchpad = "buy stamps"
	s.DotsData["2025-06-01"] = state.DayAnnotation{Note: "Trip", Type: state.TypeMilestone}
	s.DailyFocus = state.FocusRecord{Text: "ship it", Date: "Sat Oct 17 2026"}
	if err := p.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, DefaultKey)); err != nil {
		t.Fatalf("expected document at %s: %v", p.Location(), err)
	}

	// A second handle must see the write; nothing is cached.
	p2, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if diff := cmp.Diff(s, p2.Load(context.Background())); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptDocumentFallsBackAndQuarantines(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, DefaultKey), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	got := p.Load(context.Background())
	if got.TodayStyle != state.DefaultTodayStyle || len(got.DotsData) != 0 {
		t.Fatalf("expected defaults after corrupt document, got %#v", got)
	}
	kept, err := os.ReadFile(filepath.Join(base, DefaultKey+".corrupt"))
	if err != nil {
		t.Fatalf("expected quarantined copy: %v", err)
	}
	if string(kept) != "{broken" {
		t.Fatalf("unexpected quarantined content %q", kept)
	}
}

func TestLoadMergesOldDocumentsOverDefaults(t *testing.T) {
	base := t.TempDir()
	old := `{"todayStyle":"hourglass","scratchpad":"x","dotsData":{}}`
	if err := os.WriteFile(filepath.Join(base, DefaultKey), []byte(old), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	p, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	got := p.Load(context.Background())
	if got.TodayStyle != state.StyleHourglass {
		t.Fatalf("expected stored style, got %q", got.TodayStyle)
	}
	if got.DailyFocus.IsSet() || got.FocusHistory == nil {
		t.Fatalf("expected focus defaults for a document without focus fields, got %#v", got)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOTS_CONFIG_PATH", dir)
	t.Setenv("DOTS_PATH", filepath.Join(dir, "data"))
	t.Setenv("DOTS_COUNTDOWN", "replace")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "data") {
		t.Fatalf("unexpected base path %q", cfg.BasePath())
	}
	if cfg.Countdown() != "replace" {
		t.Fatalf("unexpected countdown %q", cfg.Countdown())
	}
	if cfg.Key() != DefaultKey {
		t.Fatalf("unexpected key %q", cfg.Key())
	}
}
