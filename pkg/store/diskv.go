package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/dots/pkg/state"
)

// Persistence defines the persistence contract for the dots document. The
// document is always read and written whole.
type Persistence interface {
	// Load returns the stored document merged over the defaults. A missing or
	// unreadable document yields the defaults; Load never fails.
	Load(ctx context.Context) *state.State
	// Save overwrites the stored document with s.
	Save(s *state.State) error
	// Watch streams an Event each time the stored document changes on disk.
	Watch(ctx context.Context) (<-chan Event, error)
	// Location describes where the document lives.
	Location() string
}

// Option customizes a diskv-backed Persistence.
type Option func(*persistence)

// WithLogger routes load diagnostics to log.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: flatTransform,
			TempDir:   filepath.Join(basePath, ".tmp"),
			// Reads must see writes made by other processes, so nothing is
			// cached in memory.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		key:      cfg.Key(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	key      string
	log      *zap.Logger
}

func flatTransform(string) []string { return []string{} }

func (p *persistence) Load(_ context.Context) *state.State {
	raw, err := p.d.Read(p.key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.log.Warn("state read failed, using defaults", zap.String("key", p.key), zap.Error(err))
		}
		return state.Default()
	}
	if len(raw) == 0 {
		return state.Default()
	}

	s, err := state.Decode(raw)
	if err != nil {
		p.log.Warn("state load failed, using defaults", zap.String("key", p.key), zap.Error(err))
		p.quarantine(raw)
		return state.Default()
	}
	return s
}

// quarantine keeps an unparsable document next to the real one so the next
// Save does not silently destroy it.
func (p *persistence) quarantine(raw []byte) {
	if err := p.d.Write(p.key+".corrupt", raw); err != nil {
		p.log.Warn("could not keep corrupt state", zap.Error(err))
	}
}

func (p *persistence) Save(s *state.State) error {
	if s == nil {
		return errors.New("store: nil state")
	}
	data, err := state.Encode(s)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("store: write state: %w", err)
	}
	return nil
}

func (p *persistence) Location() string {
	return filepath.Join(p.basePath, p.key)
}
