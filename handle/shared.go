package handle

import (
	"github.com/wippyai/ownership/errors"
)

// Shared co-owns a payload with every other Shared handle attached to the
// same control block. The payload is destroyed when the last of them is
// dropped, reset or reassigned.
//
// A Shared handle is either empty (no payload, no block) or holds both.
// Copies must go through Clone; a struct copy would hold a stake the block
// does not know about.
//
// Shared handles are not safe for concurrent use, and neither are different
// handles over the same payload.
type Shared[T any] struct {
	_    noCopy
	data *T
	cb   *control[T]
}

// NewShared takes ownership of data and creates its control block. A nil data
// gives an empty handle without a block.
func NewShared[T any](data *T, opts ...Option[T]) *Shared[T] {
	s := &Shared[T]{}
	s.adopt(data, newConfig(opts))
	return s
}

// MakeShared copies v into a new heap allocation and shares it.
func MakeShared[T any](v T, opts ...Option[T]) *Shared[T] {
	return NewShared(&v, opts...)
}

// FromExclusive consumes e and shares its payload. e is empty afterwards and
// its options move to the new control block.
func FromExclusive[T any](e *Exclusive[T]) *Shared[T] {
	s := &Shared[T]{}
	if e != nil {
		s.adopt(e.Release(), e.cfg)
	}
	return s
}

// FromWeak promotes w to a co-owner. It fails with errors.ErrExpired once the
// payload has been destroyed.
func FromWeak[T any](w *Weak[T]) (*Shared[T], error) {
	s, ok := w.Lock()
	if !ok {
		return nil, errors.Expired("FromWeak", typeName[T]())
	}
	return s, nil
}

func (s *Shared[T]) adopt(data *T, cfg config[T]) {
	if data == nil {
		s.data, s.cb = nil, nil
		return
	}
	s.data = data
	s.cb = newControl(data, cfg)
}

// Clone returns a new co-owner of the same payload. Cloning an empty handle
// gives an empty handle.
func (s *Shared[T]) Clone() *Shared[T] {
	if s == nil || s.cb == nil {
		return &Shared[T]{}
	}
	s.cb.addStrong()
	return &Shared[T]{data: s.data, cb: s.cb}
}

// Assign makes s a co-owner of src's payload, releasing whatever s held
// before. Assigning a handle to itself, or to another handle on the same
// block, changes nothing.
func (s *Shared[T]) Assign(src *Shared[T]) error {
	if s == src {
		return nil
	}
	if src == nil {
		return s.Drop()
	}
	if s.cb == src.cb {
		return nil
	}
	data, cb := src.data, src.cb
	if cb != nil {
		cb.addStrong()
	}
	return s.replace(data, cb)
}

// Move transfers s's stake to a new handle without touching the counts and
// leaves s empty.
func (s *Shared[T]) Move() *Shared[T] {
	m := &Shared[T]{data: s.data, cb: s.cb}
	s.data, s.cb = nil, nil
	return m
}

// MoveFrom takes over src's stake and releases the one s held. src is left
// empty. Moving a handle into itself does nothing.
func (s *Shared[T]) MoveFrom(src *Shared[T]) error {
	if s == src {
		return nil
	}
	var data *T
	var cb *control[T]
	if src != nil {
		data, cb = src.data, src.cb
		src.data, src.cb = nil, nil
	}
	return s.replace(data, cb)
}

// AssignExclusive consumes e as FromExclusive does and releases the stake s
// held before.
func (s *Shared[T]) AssignExclusive(e *Exclusive[T]) error {
	next := &Shared[T]{}
	if e != nil {
		next.adopt(e.Release(), e.cfg)
	}
	return s.replace(next.data, next.cb)
}

// replace installs a stake the caller already holds and then releases the old
// one. The new stake is in place before the old payload's deleter runs, so a
// deleter that drops the source cannot take the payload with it.
func (s *Shared[T]) replace(data *T, cb *control[T]) error {
	old := s.cb
	s.data, s.cb = data, cb
	if old == nil {
		return nil
	}
	return old.releaseStrong()
}

// Drop releases s's stake and leaves it empty. The last co-owner destroys the
// payload; the error, if any, comes from its deleter. Dropping an empty handle
// is a no-op, so a deferred Drop after Move is safe.
func (s *Shared[T]) Drop() error {
	if s == nil || s.cb == nil {
		return nil
	}
	cb := s.cb
	s.data, s.cb = nil, nil
	return cb.releaseStrong()
}

// Reset releases s's stake and takes sole ownership of data under a new,
// independent control block. Previous co-owners are unaffected. Reset(nil)
// leaves s empty.
//
// Passing the payload s already holds panics: it would be destroyed and then
// adopted again.
func (s *Shared[T]) Reset(data *T, opts ...Option[T]) error {
	if data != nil && data == s.data {
		panic(errors.InvalidInput(errors.PhaseAcquire, "Shared.Reset", "payload is already owned by this handle"))
	}
	err := s.Drop()
	s.adopt(data, newConfig(opts))
	return err
}

// Swap exchanges stakes with other. Counts are unchanged.
func (s *Shared[T]) Swap(other *Shared[T]) {
	if s == other {
		return
	}
	s.data, other.data = other.data, s.data
	s.cb, other.cb = other.cb, s.cb
}

// Weak returns a new observer of s's payload.
func (s *Shared[T]) Weak() *Weak[T] {
	return NewWeak(s)
}

// UseCount returns the number of co-owners, or 0 for an empty handle.
func (s *Shared[T]) UseCount() int {
	if s == nil || s.cb == nil {
		return 0
	}
	return s.cb.count()
}

// Unique reports whether s is the only co-owner.
func (s *Shared[T]) Unique() bool {
	return s.UseCount() == 1
}

// Get returns the payload, or nil for an empty handle.
func (s *Shared[T]) Get() *T {
	if s == nil {
		return nil
	}
	return s.data
}

// Value dereferences the handle. It panics if the handle is empty.
func (s *Shared[T]) Value() T {
	if s.Get() == nil {
		panic(errors.EmptyHandle("Shared.Value", typeName[T]()))
	}
	return *s.data
}

// Valid reports whether s holds a payload.
func (s *Shared[T]) Valid() bool {
	return s.Get() != nil
}

// Equal reports whether both handles refer to the same payload.
func (s *Shared[T]) Equal(other *Shared[T]) bool {
	return s.Get() == other.Get()
}

// Compare orders handles by payload address.
func (s *Shared[T]) Compare(other *Shared[T]) int {
	return comparePtr(s.Get(), other.Get())
}

// String prints the payload address.
func (s *Shared[T]) String() string {
	return formatPtr(s.Get())
}
