package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/dots/pkg/countdown"
	"tableflip.dev/dots/pkg/grid"
	"tableflip.dev/dots/pkg/state"
	"tableflip.dev/dots/pkg/store"
)

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrInvalidStyle  = errors.New("app: unknown today style")
	ErrInvalidType   = errors.New("app: unknown annotation type")
	ErrEmptyFocus    = errors.New("app: focus text is empty")
)

// ChangeKind names the part of the document a change touched.
type ChangeKind string

const (
	ChangeStyle      ChangeKind = "style"
	ChangeScratchpad ChangeKind = "scratchpad"
	ChangeAnnotation ChangeKind = "annotation"
	ChangeFocus      ChangeKind = "focus"
	// ChangeReloaded means the document was replaced from storage.
	ChangeReloaded ChangeKind = "reloaded"
)

// Change is delivered to subscribers after a mutation has been persisted.
// State is a private copy taken right after the mutation.
type Change struct {
	Kind  ChangeKind
	Date  string
	State *state.State
}

// Service provides the operations behind every interface of dots. It owns the
// in-memory document; each mutating method mutates a copy, persists it, swaps
// it in and only then notifies subscribers. Subscribers are called
// synchronously, outside the lock, before the method returns.
type Service struct {
	persistence store.Persistence
	now         func() time.Time
	log         *zap.Logger

	mu  sync.Mutex
	doc *state.State

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests and for pinning a session date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger routes service diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a Service over p. Call Load before anything else.
func New(p store.Persistence, opts ...Option) *Service {
	s := &Service{
		persistence: p,
		now:         time.Now,
		log:         zap.NewNop(),
		subs:        make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Load reads the document from storage and applies the daily focus reset.
func (s *Service) Load(ctx context.Context) error {
	if s.persistence == nil {
		return ErrNoPersistence
	}
	s.mu.Lock()
	s.doc = s.persistence.Load(ctx)
	s.mu.Unlock()

	_, err := s.CheckNewDay(ctx)
	return err
}

// ensureLoaded must be called with mu held. A document loaded here gets the
// same daily focus reset as Load before anything reads it.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.persistence == nil {
		return ErrNoPersistence
	}
	if s.doc != nil {
		return nil
	}
	doc := s.persistence.Load(ctx)
	if s.rollover(doc) {
		if err := s.persistence.Save(doc); err != nil {
			return fmt.Errorf("app: persist %s change: %w", ChangeFocus, err)
		}
	}
	s.doc = doc
	return nil
}

// read runs fn against the current document under the lock.
func (s *Service) read(ctx context.Context, fn func(doc *state.State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	fn(s.doc)
	return nil
}

// errUnchanged lets a mutation bail out without persisting or notifying.
var errUnchanged = errors.New("app: unchanged")

// mutate applies fn to a copy of the document, persists the copy and then
// notifies subscribers. The in-memory document only changes when the save
// succeeds.
func (s *Service) mutate(ctx context.Context, kind ChangeKind, date string, fn func(doc *state.State) error) error {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := s.persistence.Save(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("app: persist %s change: %w", kind, err)
	}
	s.doc = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.log.Debug("state changed", zap.String("kind", string(kind)), zap.String("date", date))
	s.notify(Change{Kind: kind, Date: date, State: snapshot})
	return nil
}

// Subscribe registers fn for every persisted change. The returned func
// removes it.
func (s *Service) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Watch reloads the document whenever storage reports a change and notifies
// subscribers with ChangeReloaded. It blocks until ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	if s.persistence == nil {
		return ErrNoPersistence
	}
	events, err := s.persistence.Watch(ctx)
	if err != nil {
		return fmt.Errorf("app: watch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			s.reload(ctx)
		}
	}
}

// reload reads and swaps under mu so a mutation cannot land between the two.
func (s *Service) reload(ctx context.Context) {
	s.mu.Lock()
	doc := s.persistence.Load(ctx)
	s.doc = doc
	snapshot := doc.Clone()
	s.mu.Unlock()

	s.log.Debug("reloaded document", zap.String("location", s.persistence.Location()))
	s.notify(Change{Kind: ChangeReloaded, State: snapshot})
}

// Location describes where the document is stored.
func (s *Service) Location() string {
	if s.persistence == nil {
		return ""
	}
	return s.persistence.Location()
}

// State returns a copy of the current document.
func (s *Service) State(ctx context.Context) (*state.State, error) {
	var out *state.State
	err := s.read(ctx, func(doc *state.State) {
		out = doc.Clone()
	})
	return out, err
}

// Grid renders the current year as of the service clock.
func (s *Service) Grid(ctx context.Context) ([]grid.DaySlot, error) {
	var slots []grid.DaySlot
	now := s.now()
	err := s.read(ctx, func(doc *state.State) {
		slots = grid.Render(now, doc)
	})
	return slots, err
}

// Countdown derives the days remaining and the nearest milestone.
func (s *Service) Countdown(ctx context.Context) (countdown.Countdown, error) {
	var c countdown.Countdown
	now := s.now()
	err := s.read(ctx, func(doc *state.State) {
		c = countdown.Derive(now, doc)
	})
	return c, err
}

// TodayStyle returns the configured marker style for today.
func (s *Service) TodayStyle(ctx context.Context) (state.TodayStyle, error) {
	var style state.TodayStyle
	err := s.read(ctx, func(doc *state.State) {
		style = doc.TodayStyle
	})
	return style, err
}

// SetTodayStyle changes how today's dot is drawn.
func (s *Service) SetTodayStyle(ctx context.Context, style state.TodayStyle) error {
	if !style.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, style)
	}
	return s.mutate(ctx, ChangeStyle, "", func(doc *state.State) error {
		doc.TodayStyle = style
		return nil
	})
}

// Scratchpad returns the free text scratchpad.
func (s *Service) Scratchpad(ctx context.Context) (string, error) {
	var text string
	err := s.read(ctx, func(doc *state.State) {
		text = doc.Scratchpad
	})
	return text, err
}

// SetScratchpad replaces the scratchpad text verbatim.
func (s *Service) SetScratchpad(ctx context.Context, text string) error {
	return s.mutate(ctx, ChangeScratchpad, "", func(doc *state.State) error {
		doc.Scratchpad = text
		return nil
	})
}

// AppendScratchpad adds text as a new line at the end of the scratchpad.
func (s *Service) AppendScratchpad(ctx context.Context, text string) error {
	return s.mutate(ctx, ChangeScratchpad, "", func(doc *state.State) error {
		if doc.Scratchpad != "" && !strings.HasSuffix(doc.Scratchpad, "\n") {
			doc.Scratchpad += "\n"
		}
		doc.Scratchpad += text
		return nil
	})
}
