// Package handle provides ownership handles over heap-allocated payloads.
//
// Three handle kinds cover the usual ownership roles:
//
//	Exclusive[T] - sole owner, moved but never copied
//	Shared[T]    - co-owner, counted in a control block
//	Weak[T]      - observer, does not keep the payload alive
//
// # Explicit Lifetimes
//
// Go has no destructors, so every handle is released with Drop, normally
// deferred right after construction:
//
//	s := handle.NewShared(&Session{})
//	defer s.Drop()
//
//	peer := s.Clone()   // copy: UseCount() == 2
//	defer peer.Drop()
//
//	next := s.Move()    // move: s is empty, counts unchanged
//	defer next.Drop()
//
// Drop on an empty handle does nothing, which makes a deferred Drop after Move
// safe. Handles must be passed by pointer: copying the struct would create a
// stake the control block never counted. go vet reports such copies.
//
// # Control Block
//
// Each shared payload has one control block holding a strong count (Shared
// handles) and a weak count. The weak count starts at 1 on behalf of all
// Shared handles together and grows by one per Weak handle:
//
//	last Shared dropped -> payload destroyed, the group's weak unit given back
//	last weak unit gone -> block released
//
// The two events can happen in either order relative to the last Weak handle
// going away. A Weak handle can ask for UseCount after the payload is gone,
// and Lock fails from then on:
//
//	w := s.Weak()
//	defer w.Drop()
//
//	if owner, ok := w.Lock(); ok {
//	    defer owner.Drop()
//	    use(owner.Get())
//	}
//
// # Destruction
//
// A payload is destroyed by its Deleter exactly once. The default deleter calls
// Drop() or Close() when the payload implements Dropper, Drop() error or
// io.Closer; a payload that is itself a handle therefore gives up its stake.
// Other payloads are left to the garbage collector. Deleter errors are returned from
// the call that released the last owner, wrapped as errors.KindDestroy.
//
//	f := handle.NewShared(file, handle.WithDeleter(func(f *os.File) error {
//	    return f.Close()
//	}))
//
// Observers registered with WithObserver see EventPayloadDestroyed and
// EventBlockReleased as they happen.
//
// # Programmer Errors
//
// Value on an empty handle and counter underflow panic with an *errors.Error.
// They are bugs in the caller or in the bookkeeping, never runtime conditions.
//
// # Concurrency
//
// Nothing here is safe for concurrent use. Counters are plain integers and the
// handles do no locking; all handles over one payload must be used from one
// goroutine at a time, or the caller must serialize access.
package handle
