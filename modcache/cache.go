package modcache

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/handle"
)

// Module is a compiled module shared between its users. It is closed when the
// last Shared handle on it is dropped.
type Module struct {
	compiled wazero.CompiledModule
	closeCtx context.Context
	name     string
}

// Name returns the cache key the module was compiled under.
func (m *Module) Name() string {
	return m.name
}

// Compiled returns the underlying wazero module.
func (m *Module) Compiled() wazero.CompiledModule {
	return m.compiled
}

// Close releases the compiled code. The cache's handles call it; users drop
// their handle instead.
func (m *Module) Close() error {
	Logger().Debug("module closed", zap.String("module", m.name))
	return m.compiled.Close(m.closeCtx)
}

// Option configures a Cache.
type Option func(*Cache)

// WithObserver registers an observer on every module the cache compiles.
func WithObserver(o handle.Observer) Option {
	return func(c *Cache) {
		c.opts = append(c.opts, handle.WithObserver[Module](o))
	}
}

// Cache deduplicates compilation by name. It holds only weak handles, so a
// module stays cached exactly as long as somebody owns it.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	runtime wazero.Runtime
	entries map[string]*handle.Weak[Module]
	opts    []handle.Option[Module]
	closed  bool
}

// New creates a cache compiling with rt. The cache does not own rt.
func New(rt wazero.Runtime, opts ...Option) *Cache {
	c := &Cache{
		runtime: rt,
		entries: make(map[string]*handle.Weak[Module]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns a new owner of the module cached under name, compiling bin
// if no live module exists. bin is ignored on a cache hit.
func (c *Cache) Compile(ctx context.Context, name string, bin []byte) (*handle.Shared[Module], error) {
	if c.closed {
		return nil, errors.New(errors.PhaseCompile, errors.KindClosed).
			Op("Compile").
			Detail("module cache closed").
			Build()
	}

	if s, ok := c.Lookup(name); ok {
		Logger().Debug("module reused",
			zap.String("module", name),
			zap.Int("owners", s.UseCount()))
		return s, nil
	}

	compiled, err := c.runtime.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.CompileFailed(name, err)
	}

	s := handle.NewShared(&Module{
		compiled: compiled,
		closeCtx: context.WithoutCancel(ctx),
		name:     name,
	}, c.opts...)
	c.entries[name] = s.Weak()

	Logger().Debug("module compiled", zap.String("module", name))
	return s, nil
}

// Lookup returns a new owner of the live module cached under name. Expired
// entries found on the way are dropped.
func (c *Cache) Lookup(name string) (*handle.Shared[Module], bool) {
	w, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	s, ok := w.Lock()
	if !ok {
		w.Drop()
		delete(c.entries, name)
		return nil, false
	}
	return s, true
}

// Instantiate instantiates the module held by m. The instance does not keep
// m alive: close it before dropping the last owner.
func (c *Cache) Instantiate(ctx context.Context, m *handle.Shared[Module], cfg wazero.ModuleConfig) (api.Module, error) {
	if !m.Valid() {
		return nil, errors.InvalidInput(errors.PhaseCompile, "Instantiate", "empty module handle")
	}

	mod, err := c.runtime.InstantiateModule(ctx, m.Get().compiled, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCompile, errors.KindCompile, err,
			"instantiate module "+m.Get().name)
	}
	return mod, nil
}

// Sweep drops entries whose module is gone and returns how many it removed.
func (c *Cache) Sweep() int {
	removed := 0
	for name, w := range c.entries {
		if w.Expired() {
			w.Drop()
			delete(c.entries, name)
			removed++
		}
	}
	if removed > 0 {
		Logger().Debug("module cache swept", zap.Int("removed", removed))
	}
	return removed
}

// Len returns the number of live modules in the cache.
func (c *Cache) Len() int {
	n := 0
	for _, w := range c.entries {
		if !w.Expired() {
			n++
		}
	}
	return n
}

// Close forgets every entry. Modules still owned elsewhere stay open until
// their owners drop them. Compile fails afterwards.
func (c *Cache) Close() {
	for name, w := range c.entries {
		w.Drop()
		delete(c.entries, name)
	}
	c.closed = true
}
