package store

import (
	"context"
	"sync"

	"tableflip.dev/dots/pkg/state"
)

// Memory is an in-process Persistence, used by tests and by callers that
// embed the tracker without touching disk.
type Memory struct {
	mu       sync.Mutex
	doc      *state.State
	saves    int
	watchers []chan Event
	// FailSave, when set, is returned from every Save.
	FailSave error
}

// NewMemory returns a Memory seeded with s, or with defaults when s is nil.
func NewMemory(s *state.State) *Memory {
	m := &Memory{}
	if s != nil {
		m.doc = s.Clone()
	}
	return m
}

func (m *Memory) Load(_ context.Context) *state.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return state.Default()
	}
	return m.doc.Clone()
}

func (m *Memory) Save(s *state.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.doc = s.Clone()
	m.saves++
	return nil
}

// Replace swaps the stored document as if another process wrote it and
// notifies watchers.
func (m *Memory) Replace(s *state.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = s.Clone()
	for _, w := range m.watchers {
		select {
		case w <- Event{Type: EventDocumentChanged}:
		default:
		}
	}
}

// Saves reports how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 8)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) Location() string { return "memory" }
