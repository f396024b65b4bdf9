// Package ownership provides explicit ownership handles for Go values whose
// lifetime matters: files, compiled modules, pooled buffers, anything with a
// cleanup step that must run exactly once and at the right time.
//
// The library is organized into a few packages with distinct responsibilities:
//
//	ownership/
//	├── handle/     Exclusive, Shared and Weak handles and their control block
//	├── resource/   Integer handle table owning payloads through Shared stakes
//	├── modcache/   Compiled WebAssembly modules shared through the handles
//	└── errors/     Structured error types for debugging
//
// # Quick Start
//
// Share a payload and observe it:
//
//	s := handle.NewShared(conn)     // UseCount() == 1
//	defer s.Drop()
//
//	peer := s.Clone()               // UseCount() == 2
//	w := s.Weak()                   // does not count as an owner
//	defer w.Drop()
//
//	peer.Drop()
//	if owner, ok := w.Lock(); ok {  // promotion while conn is alive
//	    defer owner.Drop()
//	}
//
// Move an exclusive owner into shared ownership:
//
//	e := handle.MakeExclusive(Config{Retries: 3})
//	s := handle.FromExclusive(e)    // e is empty now
//
// # Lifetimes
//
// The payload is destroyed when the last Shared handle is dropped, reset or
// reassigned. Its control block stays attached until the last Weak handle is
// gone as well, so observers can tell that the payload died.
//
// # Concurrency
//
// The handles are deliberately unsynchronized. Their counters are plain
// integers; all handles over a payload must be used from one goroutine at a
// time.
package ownership
