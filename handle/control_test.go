package handle

import (
	"errors"
	"testing"

	errs "github.com/wippyai/ownership/errors"
)

func TestControl_Seeded(t *testing.T) {
	v := 1
	c := newControl(&v, newConfig[int](nil))

	if c.strong != 1 {
		t.Fatalf("strong = %d, want 1", c.strong)
	}
	if c.weak != 1 {
		t.Fatalf("weak = %d, want 1 (strong group's stake)", c.weak)
	}
	if c.count() != 1 {
		t.Fatalf("count() = %d, want 1", c.count())
	}
}

func TestControl_LastStrongWithoutWeak(t *testing.T) {
	p, drops := newTracked(1)
	rec := &recorder{}
	c := newControl(p, newConfig([]Option[tracked]{WithObserver[tracked](rec)}))

	c.addStrong()
	if err := c.releaseStrong(); err != nil {
		t.Fatalf("releaseStrong: %v", err)
	}
	if *drops != 0 || c.released {
		t.Fatal("payload or block destroyed while an owner remains")
	}

	if err := c.releaseStrong(); err != nil {
		t.Fatalf("releaseStrong: %v", err)
	}
	if *drops != 1 {
		t.Fatalf("drops = %d, want 1", *drops)
	}
	if !c.released {
		t.Fatal("block should be released when no weak stakes remain")
	}
	if c.data != nil {
		t.Fatal("data should be cleared after destruction")
	}

	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec.events))
	}
	if rec.events[0].Type != EventPayloadDestroyed || rec.events[1].Type != EventBlockReleased {
		t.Fatalf("events out of order: %v, %v", rec.events[0].Type, rec.events[1].Type)
	}
	if rec.events[0].Payload != p {
		t.Fatal("destroy event should carry the payload")
	}
}

func TestControl_WeakOutlivesPayload(t *testing.T) {
	p, drops := newTracked(1)
	c := newControl(p, newConfig[tracked](nil))

	c.addWeak()
	if c.weak != 2 {
		t.Fatalf("weak = %d, want 2", c.weak)
	}

	if err := c.releaseStrong(); err != nil {
		t.Fatalf("releaseStrong: %v", err)
	}
	if *drops != 1 {
		t.Fatalf("drops = %d, want 1", *drops)
	}
	if c.weak != 1 {
		t.Fatalf("weak = %d, want 1 after the group's stake is returned", c.weak)
	}
	if c.released {
		t.Fatal("block released while a weak stake remains")
	}
	if c.tryAddStrong() {
		t.Fatal("promotion must fail once strong reached zero")
	}

	c.releaseWeak()
	if !c.released {
		t.Fatal("block should be released by the last weak stake")
	}
	if *drops != 1 {
		t.Fatalf("payload destroyed %d times", *drops)
	}
}

func TestControl_TryAddStrong(t *testing.T) {
	v := 1
	c := newControl(&v, newConfig[int](nil))
	if !c.tryAddStrong() {
		t.Fatal("tryAddStrong should succeed on a live block")
	}
	if c.count() != 2 {
		t.Fatalf("count() = %d, want 2", c.count())
	}
}

func TestControl_Underflow(t *testing.T) {
	v := 1
	c := newControl(&v, newConfig[int](nil))
	c.addWeak()
	if err := c.releaseStrong(); err != nil {
		t.Fatalf("releaseStrong: %v", err)
	}

	e := expectPanic(t, func() { _ = c.releaseStrong() })
	if e.Kind != errs.KindCountUnderflow {
		t.Fatalf("Kind = %v, want %v", e.Kind, errs.KindCountUnderflow)
	}

	e = expectPanic(t, func() { c.addStrong() })
	if e.Kind != errs.KindCountUnderflow {
		t.Fatalf("Kind = %v, want %v", e.Kind, errs.KindCountUnderflow)
	}

	c.releaseWeak()
	e = expectPanic(t, func() { c.releaseWeak() })
	if e.Value != "weak" {
		t.Fatalf("Value = %v, want weak", e.Value)
	}
}

func TestControl_DeleterError(t *testing.T) {
	cause := errors.New("flush failed")
	v := 1
	var seen *int
	c := newControl(&v, newConfig([]Option[int]{WithDeleter(func(p *int) error {
		seen = p
		return cause
	})}))

	err := c.releaseStrong()
	if !errors.Is(err, errs.ErrDestroy) {
		t.Fatalf("err = %v, want destroy error", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want it to wrap the deleter error", err)
	}
	if seen != &v {
		t.Fatal("deleter should receive the payload")
	}
	if !c.released {
		t.Fatal("block should still be released after a deleter error")
	}
}
