package resource

import (
	"slices"

	"go.uber.org/multierr"

	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/handle"
)

// Table owns payloads on behalf of integer handles. Every entry holds one
// strong stake on its payload; sharing an entry hands out more stakes, so a
// payload removed from the table lives on while other owners hold it.
//
// Like the handles it stores, a Table is not safe for concurrent use.
type Table[T any] struct {
	backend   *backend[T]
	observers []Observer
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		backend: newBackend[T](),
	}
}

// Insert takes ownership of value and returns its handle. It returns 0,
// without taking ownership, for a nil value or a closed table.
func (t *Table[T]) Insert(typeID uint32, value *T, opts ...handle.Option[T]) Handle {
	if value == nil || t.backend.closed {
		return 0
	}

	var h Handle
	opts = append(slices.Clip(opts), handle.WithObserver[T](handle.ObserverFunc(func(e handle.Event) {
		if e.Type == handle.EventPayloadDestroyed {
			t.notify(Event{
				Type:   EventDestroyed,
				Handle: t.staleOr(h, e.Payload),
				TypeID: typeID,
				Value:  e.Payload,
			})
		}
	})))

	h, _ = t.backend.create(typeID, handle.NewShared(value, opts...))
	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})
	return h
}

// Adopt moves the stake held by s into the table and returns its handle. s is
// empty afterwards. An empty s or a closed table yields 0 and leaves s alone.
func (t *Table[T]) Adopt(typeID uint32, s *handle.Shared[T]) Handle {
	if !s.Valid() || t.backend.closed {
		return 0
	}

	value := s.Get()
	h, _ := t.backend.create(typeID, s.Move())
	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})
	return h
}

// Get retrieves a payload by handle.
func (t *Table[T]) Get(h Handle) (*T, bool) {
	s, ok := t.backend.lookup(h)
	if !ok {
		return nil, false
	}
	return s.owner.Get(), true
}

// GetTyped retrieves a payload only if it was stored under typeID.
func (t *Table[T]) GetTyped(h Handle, typeID uint32) (*T, bool) {
	s, ok := t.backend.lookup(h)
	if !ok || s.typeID != typeID {
		return nil, false
	}
	return s.owner.Get(), true
}

// TypeID returns the type a handle was stored under.
func (t *Table[T]) TypeID(h Handle) (uint32, bool) {
	s, ok := t.backend.lookup(h)
	if !ok {
		return 0, false
	}
	return s.typeID, true
}

// Share returns a new co-owner of the entry's payload.
func (t *Table[T]) Share(h Handle) (*handle.Shared[T], bool) {
	s, ok := t.backend.lookup(h)
	if !ok {
		return nil, false
	}
	return s.owner.Clone(), true
}

// Observe returns a weak handle on the entry's payload.
func (t *Table[T]) Observe(h Handle) (*handle.Weak[T], bool) {
	s, ok := t.backend.lookup(h)
	if !ok {
		return nil, false
	}
	return s.owner.Weak(), true
}

// UseCount returns the number of owners of the entry's payload, the table
// included. It is 0 for unknown handles.
func (t *Table[T]) UseCount(h Handle) int {
	s, ok := t.backend.lookup(h)
	if !ok {
		return 0
	}
	return s.owner.UseCount()
}

// Borrow lends the payload out. The entry cannot be removed or taken until
// every borrow is returned.
func (t *Table[T]) Borrow(h Handle) (*T, error) {
	s, err := t.entry("Borrow", h)
	if err != nil {
		return nil, err
	}
	s.borrows++
	t.notify(Event{
		Type:   EventBorrowed,
		Handle: h,
		TypeID: s.typeID,
		Value:  s.owner.Get(),
	})
	return s.owner.Get(), nil
}

// ReturnBorrow ends one borrow of the entry.
func (t *Table[T]) ReturnBorrow(h Handle) error {
	s, err := t.entry("ReturnBorrow", h)
	if err != nil {
		return err
	}
	if s.borrows == 0 {
		return errors.New(errors.PhaseTable, errors.KindInvalidInput).
			Op("ReturnBorrow").
			Value(h).
			Detail("handle %d has no outstanding borrow", h).
			Build()
	}
	s.borrows--
	t.notify(Event{
		Type:   EventBorrowReturned,
		Handle: h,
		TypeID: s.typeID,
		Value:  s.owner.Get(),
	})
	return nil
}

// Take transfers the table's stake to the caller and frees the handle.
func (t *Table[T]) Take(h Handle) (*handle.Shared[T], error) {
	return t.take("Take", h)
}

// Remove drops the table's stake and frees the handle. The payload is
// destroyed if the table was its last owner; a deleter failure is returned.
func (t *Table[T]) Remove(h Handle) error {
	owner, err := t.take("Remove", h)
	if err != nil {
		return err
	}
	return owner.Drop()
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[T]) Unsubscribe(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active entries.
func (t *Table[T]) Len() int {
	return t.backend.len()
}

// Each iterates over all active entries in handle order.
func (t *Table[T]) Each(fn func(Handle, *T) bool) {
	t.backend.each(func(h Handle, s *slot[T]) bool {
		return fn(h, s.owner.Get())
	})
}

// Clear removes every entry that is not borrowed. Borrowed entries stay and
// are reported together with any deleter failures.
func (t *Table[T]) Clear() error {
	// Collect handles first: Remove rewrites slots
	var handles []Handle
	t.backend.each(func(h Handle, _ *slot[T]) bool {
		handles = append(handles, h)
		return true
	})

	var err error
	for _, h := range handles {
		err = multierr.Append(err, t.Remove(h))
	}
	return err
}

// Close releases every entry, borrowed or not, and stops accepting new ones.
// Closing twice is a no-op.
func (t *Table[T]) Close() error {
	var err error
	for _, owner := range t.backend.close() {
		err = multierr.Append(err, owner.Drop())
	}
	return err
}

func (t *Table[T]) entry(op string, h Handle) (*slot[T], error) {
	if t.backend.closed {
		return nil, errors.Closed(op, "resource table")
	}
	s, ok := t.backend.lookup(h)
	if !ok {
		return nil, errors.NotFound(op, uint32(h))
	}
	return s, nil
}

func (t *Table[T]) take(op string, h Handle) (*handle.Shared[T], error) {
	s, err := t.entry(op, h)
	if err != nil {
		return nil, err
	}
	if s.borrows > 0 {
		return nil, errors.OutstandingBorrow(op, uint32(h), s.borrows)
	}

	typeID := s.typeID
	owner := t.backend.free(h)
	t.notify(Event{
		Type:   EventDropped,
		Handle: h,
		TypeID: typeID,
		Value:  owner.Get(),
	})
	return owner, nil
}

// staleOr returns h unless its slot has been handed to another payload since.
func (t *Table[T]) staleOr(h Handle, payload any) Handle {
	if s, ok := t.backend.lookup(h); ok && any(s.owner.Get()) != payload {
		return 0
	}
	return h
}

func (t *Table[T]) notify(e Event) {
	// Observers may subscribe or unsubscribe from inside the callback.
	for _, o := range slices.Clone(t.observers) {
		o.OnResourceEvent(e)
	}
}
