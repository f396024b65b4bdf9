package handle

// Weak observes a payload owned by Shared handles without keeping it alive.
// It only keeps the control block attached, so it can still answer UseCount
// and Lock after the payload is gone.
type Weak[T any] struct {
	_  noCopy
	cb *control[T]
}

// NewWeak attaches an observer to s's control block. Observing an empty
// handle gives an empty Weak.
func NewWeak[T any](s *Shared[T]) *Weak[T] {
	w := &Weak[T]{}
	w.attach(s)
	return w
}

func (w *Weak[T]) attach(s *Shared[T]) {
	if s == nil || s.cb == nil {
		return
	}
	s.cb.addWeak()
	w.cb = s.cb
}

// Clone returns another observer of the same block.
func (w *Weak[T]) Clone() *Weak[T] {
	if w == nil || w.cb == nil {
		return &Weak[T]{}
	}
	w.cb.addWeak()
	return &Weak[T]{cb: w.cb}
}

// Assign makes w observe src's block, releasing its previous stake.
// Self-assignment changes nothing.
func (w *Weak[T]) Assign(src *Weak[T]) {
	if w == src {
		return
	}
	if src == nil {
		w.Drop()
		return
	}
	if w.cb == src.cb {
		return
	}
	old := w.cb
	w.cb = src.cb
	if w.cb != nil {
		w.cb.addWeak()
	}
	if old != nil {
		old.releaseWeak()
	}
}

// AssignShared makes w observe s's payload, releasing its previous stake.
func (w *Weak[T]) AssignShared(s *Shared[T]) {
	if s != nil && s.cb != nil && s.cb == w.cb {
		return
	}
	w.Drop()
	w.attach(s)
}

// Move transfers w's stake to a new handle and leaves w empty.
func (w *Weak[T]) Move() *Weak[T] {
	m := &Weak[T]{cb: w.cb}
	w.cb = nil
	return m
}

// MoveFrom releases w's stake and takes over src's. Moving a handle into
// itself does nothing.
func (w *Weak[T]) MoveFrom(src *Weak[T]) {
	if w == src {
		return
	}
	old := w.cb
	w.cb = nil
	if src != nil {
		w.cb, src.cb = src.cb, nil
	}
	if old != nil {
		old.releaseWeak()
	}
}

// Drop releases w's stake. The last stake on a block whose payload is gone
// releases the block.
func (w *Weak[T]) Drop() {
	if w == nil || w.cb == nil {
		return
	}
	cb := w.cb
	w.cb = nil
	cb.releaseWeak()
}

// Reset is Drop.
func (w *Weak[T]) Reset() {
	w.Drop()
}

// Swap exchanges blocks with other.
func (w *Weak[T]) Swap(other *Weak[T]) {
	if w == other {
		return
	}
	w.cb, other.cb = other.cb, w.cb
}

// UseCount returns the number of co-owners of the observed payload. It is 0
// for an empty handle and after the payload has been destroyed.
func (w *Weak[T]) UseCount() int {
	if w == nil || w.cb == nil {
		return 0
	}
	return w.cb.count()
}

// Expired reports whether the observed payload is gone.
func (w *Weak[T]) Expired() bool {
	return w.UseCount() == 0
}

// Lock promotes w to a new co-owner. Once the payload is destroyed it returns
// an empty handle and false. Checking and taking the stake are one step only
// because nothing else may touch the block concurrently.
func (w *Weak[T]) Lock() (*Shared[T], bool) {
	if w == nil || w.cb == nil || !w.cb.tryAddStrong() {
		return &Shared[T]{}, false
	}
	return &Shared[T]{data: w.cb.data, cb: w.cb}, true
}
