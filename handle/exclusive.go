package handle

import (
	"github.com/wippyai/ownership/errors"
)

// Exclusive is the sole owner of a payload. It can be moved but not copied;
// no two live Exclusive handles ever hold the same non-nil payload.
//
// Use it through a pointer and end its life with Drop:
//
//	e := handle.NewExclusive(&Buffer{})
//	defer e.Drop()
type Exclusive[T any] struct {
	_    noCopy
	data *T
	cfg  config[T]
}

// NewExclusive takes ownership of data. A nil data gives an empty handle.
func NewExclusive[T any](data *T, opts ...Option[T]) *Exclusive[T] {
	return &Exclusive[T]{data: data, cfg: newConfig(opts)}
}

// MakeExclusive copies v into a new heap allocation owned by the handle.
func MakeExclusive[T any](v T, opts ...Option[T]) *Exclusive[T] {
	return NewExclusive(&v, opts...)
}

// Move transfers ownership to a new handle and leaves e empty.
func (e *Exclusive[T]) Move() *Exclusive[T] {
	m := &Exclusive[T]{data: e.data, cfg: e.cfg}
	e.data = nil
	return m
}

// MoveFrom destroys the payload e holds and takes over src's. src is left
// empty. Moving a handle into itself does nothing.
func (e *Exclusive[T]) MoveFrom(src *Exclusive[T]) error {
	if e == src {
		return nil
	}
	if src == nil {
		return e.Drop()
	}
	old, oldCfg := e.data, e.cfg
	e.data, e.cfg = src.data, src.cfg
	src.data = nil
	if old == e.data {
		return nil
	}
	return oldCfg.destroy(old, 0, 0)
}

// Release gives up ownership without destroying the payload and returns it.
// The handle is empty afterwards.
func (e *Exclusive[T]) Release() *T {
	if e == nil {
		return nil
	}
	data := e.data
	e.data = nil
	return data
}

// Reset destroys the current payload, unless it is data itself, and takes
// ownership of data.
func (e *Exclusive[T]) Reset(data *T) error {
	old := e.data
	e.data = data
	if old == data {
		return nil
	}
	return e.cfg.destroy(old, 0, 0)
}

// Drop destroys the payload. Dropping an empty handle is a no-op.
func (e *Exclusive[T]) Drop() error {
	if e == nil {
		return nil
	}
	return e.Reset(nil)
}

// Swap exchanges payloads with other without destroying anything.
func (e *Exclusive[T]) Swap(other *Exclusive[T]) {
	if e == other {
		return
	}
	e.data, other.data = other.data, e.data
	e.cfg, other.cfg = other.cfg, e.cfg
}

// Get returns the payload, or nil for an empty handle.
func (e *Exclusive[T]) Get() *T {
	if e == nil {
		return nil
	}
	return e.data
}

// Value dereferences the handle. It panics if the handle is empty.
func (e *Exclusive[T]) Value() T {
	if e.Get() == nil {
		panic(errors.EmptyHandle("Exclusive.Value", typeName[T]()))
	}
	return *e.data
}

// Valid reports whether the handle owns a payload.
func (e *Exclusive[T]) Valid() bool {
	return e.Get() != nil
}

// Equal reports whether both handles refer to the same payload.
func (e *Exclusive[T]) Equal(other *Exclusive[T]) bool {
	return e.Get() == other.Get()
}

// Compare orders handles by payload address.
func (e *Exclusive[T]) Compare(other *Exclusive[T]) int {
	return comparePtr(e.Get(), other.Get())
}

// String prints the payload address.
func (e *Exclusive[T]) String() string {
	return formatPtr(e.Get())
}
