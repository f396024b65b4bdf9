package handle

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
)

// Deleter destroys a payload. It runs exactly once per payload, when the last
// owner lets go of it.
type Deleter[T any] func(*T) error

// Dropper is optionally implemented by payloads that need cleanup.
type Dropper interface {
	Drop()
}

// EventType identifies a lifecycle transition of a payload or control block.
type EventType uint8

const (
	// EventPayloadDestroyed fires after the deleter ran for a payload.
	EventPayloadDestroyed EventType = iota
	// EventBlockReleased fires when the last weak stake on a control block is gone.
	EventBlockReleased
)

func (t EventType) String() string {
	switch t {
	case EventPayloadDestroyed:
		return "payload-destroyed"
	case EventBlockReleased:
		return "block-released"
	default:
		return "unknown"
	}
}

// Event describes a lifecycle transition. Strong and Weak are the counter
// values at the moment the event fired; both are zero for Exclusive handles.
type Event struct {
	Payload any
	Type    EventType
	Strong  int
	Weak    int
}

// Observer receives lifecycle events for the payloads it was registered on.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnHandleEvent calls f(e).
func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}

// Option configures how a payload is destroyed and who is told about it.
// Options travel with the payload: an Exclusive handle consumed into a Shared
// handle hands its options to the new control block.
type Option[T any] func(*config[T])

// WithDeleter replaces the default deleter.
func WithDeleter[T any](d func(*T) error) Option[T] {
	return func(c *config[T]) {
		if d != nil {
			c.deleter = d
		}
	}
}

// WithObserver registers an observer for the payload's lifecycle events.
func WithObserver[T any](o Observer) Option[T] {
	return func(c *config[T]) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

type config[T any] struct {
	deleter   Deleter[T]
	observers []Observer
}

func newConfig[T any](opts []Option[T]) config[T] {
	cfg := config[T]{deleter: defaultDeleter[T]}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// releaser is implemented by payloads whose Drop can fail, handles included.
type releaser interface {
	Drop() error
}

// defaultDeleter calls Drop or Close on the payload if it has one. A payload
// that is itself a handle gives up its stake.
func defaultDeleter[T any](data *T) error {
	switch v := any(data).(type) {
	case Dropper:
		v.Drop()
		return nil
	case releaser:
		return v.Drop()
	case io.Closer:
		return v.Close()
	}
	switch v := any(*data).(type) {
	case Dropper:
		v.Drop()
	case releaser:
		return v.Drop()
	case io.Closer:
		return v.Close()
	}
	return nil
}

// destroy runs the deleter on data and reports the result to the log and to
// the observers.
func (c config[T]) destroy(data *T, strong, weak int) error {
	if data == nil {
		return nil
	}

	deleter := c.deleter
	if deleter == nil {
		deleter = defaultDeleter[T]
	}

	var result error
	if err := deleter(data); err != nil {
		Logger().Warn("payload deleter failed",
			zap.String("type", typeName[T]()),
			zap.Error(err))
		result = errors.DestroyFailed(typeName[T](), err)
	} else {
		Logger().Debug("payload destroyed",
			zap.String("type", typeName[T]()),
			zap.Int("weak", weak))
	}

	c.notify(Event{
		Type:    EventPayloadDestroyed,
		Payload: data,
		Strong:  strong,
		Weak:    weak,
	})
	return result
}

func (c config[T]) notify(e Event) {
	for _, o := range c.observers {
		o.OnHandleEvent(e)
	}
}
