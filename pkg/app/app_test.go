package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/store"
)

var testNow = time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, seed *state.State) (*Service, *store.Memory) {
	t.Helper()
	if seed == nil {
		seed = state.Default()
		seed.DailyFocus.Date = "Thu May 01 2025"
	}
	mem := store.NewMemory(seed)
	svc := New(mem, WithClock(func() time.Time { return testNow }))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc, mem
}

func TestSaveEmptyDraftDeletes(t *testing.T) {
	svc, mem := newTestService(t, nil)
	ctx := context.Background()

	if err := svc.Save(ctx, Draft{Day: 10, Year: 2025, Note: "keep", Type: state.TypeJournal}); err != nil {
		t.Fatalf("save: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := svc.Save(ctx, Draft{Day: 10, Year: 2025, Note: "   "}); err != nil {
			t.Fatalf("save empty #%d: %v", i, err)
		}
		if _, ok := mem.Load(ctx).DotsData["2025-01-10"]; ok {
			t.Fatalf("save empty #%d left an entry behind", i)
		}
	}
}

func TestOpenSuggestsType(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	cases := []struct {
		day  int
		want state.AnnotationType
	}{
		{day: 120, want: state.TypeJournal},   // Apr 30
		{day: 121, want: state.TypeJournal},   // today
		{day: 122, want: state.TypeMilestone}, // May 2
	}
	for _, tc := range cases {
		d, err := svc.Open(ctx, tc.day, 2025)
		if err != nil {
			t.Fatalf("open %d: %v", tc.day, err)
		}
		if d.Type != tc.want || d.Existing {
			t.Fatalf("day %d: expected suggested %q, got %#v", tc.day, tc.want, d)
		}
	}
}

func TestOpenSaveRoundTrip(t *testing.T) {
	svc, mem := newTestService(t, nil)
	ctx := context.Background()

	d, err := svc.Open(ctx, 152, 2025)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	d.Note = "  Trip  "
	if err := svc.Save(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := state.DayAnnotation{Note: "Trip", Type: state.TypeMilestone}
	if diff := cmp.Diff(want, mem.Load(ctx).DotsData["2025-06-01"]); diff != "" {
		t.Fatalf("stored annotation mismatch (-want +got):\n%s", diff)
	}

	again, err := svc.Open(ctx, 152, 2025)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !again.Existing || again.Note != "Trip" || again.Type != state.TypeMilestone {
		t.Fatalf("unexpected reopened draft %#v", again)
	}

	c, err := svc.Countdown(ctx)
	if err != nil {
		t.Fatalf("countdown: %v", err)
	}
	if c.Milestone == nil || c.Milestone.Days != 31 {
		t.Fatalf("expected milestone 31 days out, got %#v", c.Milestone)
	}
}

func TestSaveRejectsUnknownType(t *testing.T) {
	svc, mem := newTestService(t, nil)
	err := svc.Save(context.Background(), Draft{Day: 1, Year: 2025, Note: "x", Type: "birthday"})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if mem.Saves() != 0 {
		t.Fatalf("rejected save must not persist")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	seed := state.Default()
	seed.DailyFocus.Date = "Thu May 01 2025"
	seed.DotsData["2025-02-01"] = state.DayAnnotation{Note: "gone", Type: state.TypeJournal}
	svc, mem := newTestService(t, seed)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.Delete(ctx, 32, 2025); err != nil {
			t.Fatalf("delete #%d: %v", i, err)
		}
	}
	if len(mem.Load(ctx).DotsData) != 0 {
		t.Fatalf("expected no annotations left")
	}
	if mem.Saves() != 2 {
		t.Fatalf("expected each delete to persist, got %d saves", mem.Saves())
	}
}

func TestLoadResetsStaleFocus(t *testing.T) {
	seed := state.Default()
	seed.DailyFocus = state.FocusRecord{Text: "yesterday's task", Completed: true, Date: "Wed Apr 30 2025"}
	svc, mem := newTestService(t, seed)
	ctx := context.Background()

	f, err := svc.Focus(ctx)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if diff := cmp.Diff(state.FocusRecord{Date: "Thu May 01 2025"}, f); diff != "" {
		t.Fatalf("expected empty focus for today (-want +got):\n%s", diff)
	}

	history, err := svc.FocusHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Text != "yesterday's task" {
		t.Fatalf("expected stale focus archived, got %#v", history)
	}
	if !cmp.Equal(mem.Load(ctx).DailyFocus, f) {
		t.Fatalf("reset was not persisted")
	}

	reset, err := svc.CheckNewDay(ctx)
	if err != nil || reset {
		t.Fatalf("second check must be a no-op, got reset=%v err=%v", reset, err)
	}
}

func TestFirstReadWithoutLoadResetsStaleFocus(t *testing.T) {
	seed := state.Default()
	seed.DailyFocus = state.FocusRecord{Text: "old", Date: "Wed Apr 30 2025"}
	mem := store.NewMemory(seed)
	svc := New(mem, WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	f, err := svc.Focus(ctx)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if diff := cmp.Diff(state.FocusRecord{Date: "Thu May 01 2025"}, f); diff != "" {
		t.Fatalf("expected today's empty focus (-want +got):\n%s", diff)
	}
	stored := mem.Load(ctx)
	if stored.DailyFocus.Date != "Thu May 01 2025" {
		t.Fatalf("reset was not persisted: %#v", stored.DailyFocus)
	}
	if len(stored.FocusHistory) != 1 || stored.FocusHistory[0].Text != "old" {
		t.Fatalf("expected stale focus archived, got %#v", stored.FocusHistory)
	}
}

func TestFocusLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	if err := svc.SetFocus(ctx, "  "); !errors.Is(err, ErrEmptyFocus) {
		t.Fatalf("expected ErrEmptyFocus, got %v", err)
	}
	if err := svc.SetFocus(ctx, "write report"); err != nil {
		t.Fatalf("set focus: %v", err)
	}
	f, err := svc.ToggleFocus(ctx)
	if err != nil || !f.Completed {
		t.Fatalf("expected completed focus, got %#v err=%v", f, err)
	}
	f, err = svc.ToggleFocus(ctx)
	if err != nil || f.Completed {
		t.Fatalf("expected active focus, got %#v err=%v", f, err)
	}
	if err := svc.ClearFocus(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	f, _ = svc.Focus(ctx)
	if f.IsSet() || f.Date != "Thu May 01 2025" {
		t.Fatalf("expected cleared focus, got %#v", f)
	}
}

func TestToggleWithoutFocusIsNoop(t *testing.T) {
	svc, mem := newTestService(t, nil)
	notified := 0
	svc.Subscribe(func(Change) { notified++ })

	f, err := svc.ToggleFocus(context.Background())
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if f.Completed || mem.Saves() != 0 || notified != 0 {
		t.Fatalf("toggle without focus must do nothing: %#v saves=%d notified=%d", f, mem.Saves(), notified)
	}
}

func TestSubscribersSeePersistedState(t *testing.T) {
	svc, mem := newTestService(t, nil)
	ctx := context.Background()

	var changes []Change
	cancel := svc.Subscribe(func(c Change) {
		if mem.Saves() == 0 {
			t.Errorf("notified before persisting")
		}
		changes = append(changes, c)
	})

	if err := svc.SetTodayStyle(ctx, state.StyleHourglass); err != nil {
		t.Fatalf("style: %v", err)
	}
	if err := svc.SetScratchpad(ctx, "notes"); err != nil {
		t.Fatalf("scratchpad: %v", err)
	}
	cancel()
	if err := svc.AppendScratchpad(ctx, "more"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes before cancel, got %d", len(changes))
	}
	if changes[0].Kind != ChangeStyle || changes[0].State.TodayStyle != state.StyleHourglass {
		t.Fatalf("unexpected first change %#v", changes[0])
	}
	if changes[1].Kind != ChangeScratchpad || changes[1].State.Scratchpad != "notes" {
		t.Fatalf("unexpected second change %#v", changes[1])
	}
	if got := mem.Load(ctx).Scratchpad; got != "notes\nmore" {
		t.Fatalf("unexpected scratchpad %q", got)
	}
}

func TestFailedSaveKeepsStateAndSkipsNotify(t *testing.T) {
	svc, mem := newTestService(t, nil)
	ctx := context.Background()
	mem.FailSave = errors.New("disk full")

	notified := false
	svc.Subscribe(func(Change) { notified = true })

	if err := svc.SetScratchpad(ctx, "lost"); err == nil {
		t.Fatalf("expected save error")
	}
	if notified {
		t.Fatalf("must not notify after a failed save")
	}
	if text, _ := svc.Scratchpad(ctx); text != "" {
		t.Fatalf("in-memory state changed after failed save: %q", text)
	}
}

func TestSetTodayStyleRejectsUnknown(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if err := svc.SetTodayStyle(context.Background(), "sparkle"); !errors.Is(err, ErrInvalidStyle) {
		t.Fatalf("expected ErrInvalidStyle, got %v", err)
	}
}

func TestWatchReloadsReplacedDocument(t *testing.T) {
	svc, mem := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	reloaded := make(chan Change, 1)
	svc.Subscribe(func(c Change) {
		if c.Kind == ChangeReloaded {
			reloaded <- c
		}
	})

	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx) }()
	// Give Watch time to register with the store.
	time.Sleep(20 * time.Millisecond)

	next := state.Default()
	next.Scratchpad = "from elsewhere"
	mem.Replace(next)

	select {
	case c := <-reloaded:
		if c.State.Scratchpad != "from elsewhere" {
			t.Fatalf("unexpected reloaded state %#v", c.State)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected reload notification")
	}
	if text, _ := svc.Scratchpad(ctx); text != "from elsewhere" {
		t.Fatalf("service did not adopt reloaded document: %q", text)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
}

// gatedStore pauses Load after it has read the document until release is
// closed.
type gatedStore struct {
	*store.Memory
	gate    bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Load(ctx context.Context) *state.State {
	doc := g.Memory.Load(ctx)
	if g.gate {
		g.gate = false
		close(g.entered)
		<-g.release
	}
	return doc
}

func TestReloadDoesNotLoseConcurrentWrite(t *testing.T) {
	seed := state.Default()
	seed.DailyFocus.Date = "Thu May 01 2025"
	gs := &gatedStore{
		Memory:  store.NewMemory(seed),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := New(gs, WithClock(func() time.Time { return testNow }))
	ctx := context.Background()
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	gs.gate = true

	reloaded := make(chan struct{})
	go func() {
		svc.reload(ctx)
		close(reloaded)
	}()
	<-gs.entered

	wrote := make(chan error, 1)
	go func() { wrote <- svc.SetScratchpad(ctx, "important") }()
	// Let the write reach the service while reload is still reading.
	time.Sleep(20 * time.Millisecond)
	close(gs.release)
	<-reloaded
	if err := <-wrote; err != nil {
		t.Fatalf("scratchpad: %v", err)
	}

	if err := svc.SetTodayStyle(ctx, state.StylePulse); err != nil {
		t.Fatalf("style: %v", err)
	}
	if got := gs.Memory.Load(ctx).Scratchpad; got != "important" {
		t.Fatalf("scratchpad write was lost across reload, stored %q", got)
	}
	if text, _ := svc.Scratchpad(ctx); text != "important" {
		t.Fatalf("service lost scratchpad write, has %q", text)
	}
}

func TestNoPersistence(t *testing.T) {
	svc := New(nil)
	if err := svc.Load(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
	if _, err := svc.Grid(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
