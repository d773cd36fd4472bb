package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// LoadFunc produces a fresh catalog snapshot from the definition source.
type LoadFunc func() (*Catalog, error)

func DirLoader(dir string) LoadFunc {
	return func() (*Catalog, error) {
		return LoadDir(dir)
	}
}

// Registry serves the current catalog snapshot. Reloads build a whole new
// snapshot and swap it in; readers never see a partially loaded catalog.
type Registry struct {
	load    LoadFunc
	logger  *zap.Logger
	current atomic.Pointer[Catalog]
	mu      sync.Mutex
	hooks   []func(*Catalog)
}

func NewRegistry(load LoadFunc, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{load: load, logger: logger}
	c, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}
	r.current.Store(c)

	logger.Info("template catalog loaded",
		zap.Int("templates", c.Len()),
		zap.Int("categories", len(c.MainCategories())))
	return r, nil
}

// NewStaticRegistry wraps an already built catalog. Reload keeps returning it.
func NewStaticRegistry(c *Catalog) *Registry {
	r := &Registry{
		load:   func() (*Catalog, error) { return c, nil },
		logger: zap.NewNop(),
	}
	r.current.Store(c)
	return r
}

func (r *Registry) Current() *Catalog {
	return r.current.Load()
}

// Reload replaces the snapshot. On failure the previous snapshot stays live.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load()
	if err != nil {
		r.logger.Warn("template catalog reload failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	prev := r.current.Swap(c)
	r.logger.Info("template catalog reloaded",
		zap.Int("templates", c.Len()),
		zap.Int("previous", prev.Len()))
	for _, fn := range r.hooks {
		fn(c)
	}
	return nil
}

// OnReload registers fn to run after every successful reload. Hooks run
// under the reload lock and must not call Reload.
func (r *Registry) OnReload(fn func(*Catalog)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Watch reloads on every signal from changes until ctx is done or changes is
// closed.
func (r *Registry) Watch(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			_ = r.Reload()
		}
	}
}
