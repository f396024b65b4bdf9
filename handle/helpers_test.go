package handle

import (
	"errors"
	"testing"

	errs "github.com/wippyai/ownership/errors"
)

// tracked counts how often it was destroyed.
type tracked struct {
	drops *int
	value int
}

func (t *tracked) Drop() {
	*t.drops++
}

func newTracked(value int) (*tracked, *int) {
	drops := new(int)
	return &tracked{value: value, drops: drops}, drops
}

type recorder struct {
	events []Event
}

func (r *recorder) OnHandleEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// expectPanic runs fn and returns the *errors.Error it panicked with.
func expectPanic(t *testing.T, fn func()) *errs.Error {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	if got == nil {
		t.Fatal("expected panic")
	}
	err, ok := got.(error)
	if !ok {
		t.Fatalf("panic value %v is not an error", got)
	}
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("panic value %v is not *errors.Error", got)
	}
	return e
}
