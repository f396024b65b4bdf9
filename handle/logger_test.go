package handle

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestLogger_DefaultIsNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() should never be nil")
	}
}

func TestLogger_Lifecycle(t *testing.T) {
	logs := withObservedLogger(t)

	s := MakeShared(1)
	w := s.Weak()
	if err := s.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if logs.FilterMessage("payload destroyed").Len() != 1 {
		t.Fatal("expected a payload destroyed entry")
	}
	if logs.FilterMessage("control block released").Len() != 0 {
		t.Fatal("block logged as released while observed")
	}

	w.Drop()
	entries := logs.FilterMessage("control block released").All()
	if len(entries) != 1 {
		t.Fatalf("got %d block released entries, want 1", len(entries))
	}
	if entries[0].ContextMap()["type"] != "*int" {
		t.Fatalf("type field = %v, want *int", entries[0].ContextMap()["type"])
	}
}

func TestLogger_DeleterFailure(t *testing.T) {
	logs := withObservedLogger(t)

	e := NewExclusive(&closer{err: errors.New("busy")})
	if err := e.Drop(); err == nil {
		t.Fatal("expected deleter error")
	}

	warned := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("payload deleter failed")
	if warned.Len() != 1 {
		t.Fatalf("got %d warnings, want 1", warned.Len())
	}
}
