package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAccess,
				Kind:   KindEmptyHandle,
				Op:     "Shared.Value",
				GoType: "*main.Config",
				Detail: "dereference of empty handle",
			},
			contains: []string{"[access]", "empty_handle", "in Shared.Value", "*main.Config", " - dereference"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTable,
				Kind:  KindClosed,
			},
			contains: []string{"[table]", "closed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRelease,
				Kind:   KindDestroy,
				Detail: "payload deleter failed",
				Cause:  errors.New("close: broken pipe"),
			},
			contains: []string{"[release]", "destroy", ": payload deleter failed", "caused by", "broken pipe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseRelease,
		Kind:  KindDestroy,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	err := NotFound("Borrow", 7)

	if !errors.Is(err, ErrNotFound) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, ErrClosed) {
		t.Error("Is should not match different kind")
	}
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(errors.New("not found")) {
		t.Error("Is should not match foreign error types")
	}

	var target *Error
	if !errors.As(err, &target) {
		t.Fatal("errors.As should extract *Error")
	}
	if target.Value != uint32(7) {
		t.Errorf("Value = %v, want 7", target.Value)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseTable, KindTypeMismatch).
		Op("GetTyped").
		GoType("*os.File").
		Value(42).
		Cause(cause).
		Detail("expected type %d, got %d", 1, 2).
		Build()

	if err.Phase != PhaseTable {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseTable)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Op != "GetTyped" {
		t.Errorf("Op = %v, want GetTyped", err.Op)
	}
	if err.GoType != "*os.File" {
		t.Errorf("GoType = %v, want '*os.File'", err.GoType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected type 1, got 2" {
		t.Errorf("Detail = %v, want 'expected type 1, got 2'", err.Detail)
	}

	plain := New(PhaseAccess, KindEmptyHandle).Detail("fully empty").Build()
	if plain.Detail != "fully empty" {
		t.Errorf("Detail without args should be kept verbatim, got %q", plain.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"EmptyHandle", EmptyHandle("Exclusive.Value", "*int"), PhaseAccess, KindEmptyHandle},
		{"Expired", Expired("FromWeak", "*int"), PhaseAcquire, KindExpired},
		{"CountUnderflow", CountUnderflow("weak", "*int"), PhaseRelease, KindCountUnderflow},
		{"InvalidInput", InvalidInput(PhaseAcquire, "Shared.Reset", "same payload"), PhaseAcquire, KindInvalidInput},
		{"DestroyFailed", DestroyFailed("*int", cause), PhaseRelease, KindDestroy},
		{"NotFound", NotFound("Get", 3), PhaseTable, KindNotFound},
		{"OutstandingBorrow", OutstandingBorrow("Remove", 3, 2), PhaseTable, KindOutstandingBorrow},
		{"Closed", Closed("Share", "resource table"), PhaseTable, KindClosed},
		{"CompileFailed", CompileFailed("app", cause), PhaseCompile, KindCompile},
		{"Wrap", Wrap(PhaseRelease, KindDestroy, cause, "close"), PhaseRelease, KindDestroy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}

	if !errors.Is(DestroyFailed("*int", cause), cause) {
		t.Error("DestroyFailed should unwrap to its cause")
	}
	if !strings.Contains(OutstandingBorrow("Remove", 3, 2).Detail, "2 outstanding") {
		t.Error("OutstandingBorrow detail should report the borrow count")
	}
	if !strings.Contains(CountUnderflow("strong", "*int").Error(), "strong count already zero") {
		t.Error("CountUnderflow should name the counter")
	}
}
