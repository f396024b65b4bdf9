package resource

import (
	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/handle"
)

// backend stores table entries in dense slots and recycles freed slots.
type backend[T any] struct {
	slots    []slot[T]
	freeList []Handle
	closed   bool
}

type slot[T any] struct {
	owner   *handle.Shared[T]
	typeID  uint32
	borrows uint32
	valid   bool
}

func newBackend[T any]() *backend[T] {
	return &backend[T]{
		slots:    make([]slot[T], 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// create stores owner and returns its handle. The backend takes over the
// caller's stake.
func (b *backend[T]) create(typeID uint32, owner *handle.Shared[T]) (Handle, error) {
	if b.closed {
		return 0, errors.Closed("create", "resource table")
	}

	s := slot[T]{
		owner:  owner,
		typeID: typeID,
		valid:  true,
	}

	if len(b.freeList) > 0 {
		h := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.slots[h-1] = s
		return h, nil
	}

	b.slots = append(b.slots, s)
	return Handle(len(b.slots)), nil
}

func (b *backend[T]) lookup(h Handle) (*slot[T], bool) {
	if h == 0 || int(h) > len(b.slots) {
		return nil, false
	}
	s := &b.slots[h-1]
	if !s.valid {
		return nil, false
	}
	return s, true
}

// free invalidates a slot and hands its stake back to the caller.
func (b *backend[T]) free(h Handle) *handle.Shared[T] {
	s, ok := b.lookup(h)
	if !ok {
		return nil
	}
	owner := s.owner
	*s = slot[T]{}
	b.freeList = append(b.freeList, h)
	return owner
}

func (b *backend[T]) len() int {
	count := 0
	for i := range b.slots {
		if b.slots[i].valid {
			count++
		}
	}
	return count
}

func (b *backend[T]) each(fn func(Handle, *slot[T]) bool) {
	for i := range b.slots {
		if b.slots[i].valid {
			if !fn(Handle(i+1), &b.slots[i]) {
				break
			}
		}
	}
}

// close marks the backend closed and returns every remaining stake.
func (b *backend[T]) close() []*handle.Shared[T] {
	if b.closed {
		return nil
	}
	b.closed = true

	var owners []*handle.Shared[T]
	for i := range b.slots {
		if b.slots[i].valid {
			owners = append(owners, b.slots[i].owner)
		}
	}
	b.slots = nil
	b.freeList = nil
	return owners
}
