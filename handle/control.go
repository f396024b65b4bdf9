package handle

import (
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
)

// control is the bookkeeping block shared by every Shared and Weak handle over
// one payload.
//
// weak starts at 1. That unit belongs to the strong group as a whole and is
// given back exactly once, when strong reaches zero. Each Weak handle adds one
// more. The block is released when weak reaches zero, which cannot happen
// before the payload is destroyed.
//
// The counters are plain ints: a block must only be touched by one goroutine
// at a time.
type control[T any] struct {
	data     *T
	cfg      config[T]
	strong   int
	weak     int
	released bool // set once weak reaches zero; kept for inspection
}

func newControl[T any](data *T, cfg config[T]) *control[T] {
	return &control[T]{
		data:   data,
		cfg:    cfg,
		strong: 1,
		weak:   1,
	}
}

// addStrong adds a co-owner. The caller must already hold a strong stake.
func (c *control[T]) addStrong() {
	if c.strong == 0 {
		panic(errors.CountUnderflow("strong", typeName[T]()))
	}
	c.strong++
}

// tryAddStrong adds a co-owner only while the payload is alive.
func (c *control[T]) tryAddStrong() bool {
	if c.strong == 0 {
		return false
	}
	c.strong++
	return true
}

// releaseStrong drops a co-owner. The last one destroys the payload and then
// gives back the strong group's weak stake.
func (c *control[T]) releaseStrong() error {
	if c.strong == 0 {
		panic(errors.CountUnderflow("strong", typeName[T]()))
	}
	c.strong--
	if c.strong > 0 {
		return nil
	}

	err := c.destroyData()
	c.releaseWeak()
	return err
}

func (c *control[T]) addWeak() {
	if c.weak == 0 {
		panic(errors.CountUnderflow("weak", typeName[T]()))
	}
	c.weak++
}

func (c *control[T]) releaseWeak() {
	if c.weak == 0 {
		panic(errors.CountUnderflow("weak", typeName[T]()))
	}
	c.weak--
	if c.weak == 0 {
		c.destroySelf()
	}
}

func (c *control[T]) count() int {
	return c.strong
}

func (c *control[T]) destroyData() error {
	data := c.data
	c.data = nil
	return c.cfg.destroy(data, c.strong, c.weak)
}

func (c *control[T]) destroySelf() {
	c.released = true
	Logger().Debug("control block released", zap.String("type", typeName[T]()))
	c.cfg.notify(Event{Type: EventBlockReleased})
	c.cfg = config[T]{}
}
