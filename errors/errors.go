package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which kind of handle operation produced the error
type Phase string

const (
	PhaseAccess  Phase = "access"  // dereference of a handle
	PhaseAcquire Phase = "acquire" // taking a new stake (clone, promotion)
	PhaseRelease Phase = "release" // dropping a stake, destroying a payload
	PhaseTable   Phase = "table"   // resource table operations
	PhaseCompile Phase = "compile" // module compilation in the cache
)

// Kind categorizes the error
type Kind string

const (
	KindEmptyHandle       Kind = "empty_handle"
	KindExpired           Kind = "expired"
	KindCountUnderflow    Kind = "count_underflow"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindTypeMismatch      Kind = "type_mismatch"
	KindOutstandingBorrow Kind = "outstanding_borrow"
	KindClosed            Kind = "closed"
	KindDestroy           Kind = "destroy"
	KindCompile           Kind = "compile"
)

// Sentinels for errors.Is. Matching ignores everything but Phase and Kind.
var (
	ErrExpired           = &Error{Phase: PhaseAcquire, Kind: KindExpired}
	ErrNotFound          = &Error{Phase: PhaseTable, Kind: KindNotFound}
	ErrOutstandingBorrow = &Error{Phase: PhaseTable, Kind: KindOutstandingBorrow}
	ErrClosed            = &Error{Phase: PhaseTable, Kind: KindClosed}
	ErrDestroy           = &Error{Phase: PhaseRelease, Kind: KindDestroy}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	GoType string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// EmptyHandle creates the error raised when an empty handle is dereferenced
func EmptyHandle(op, goType string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindEmptyHandle,
		Op:     op,
		GoType: goType,
		Detail: "dereference of empty handle",
	}
}

// Expired creates the error returned when promotion finds the payload destroyed
func Expired(op, goType string) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindExpired,
		Op:     op,
		GoType: goType,
		Detail: "payload already destroyed",
	}
}

// CountUnderflow creates the error raised when a counter would leave its valid range.
// It always indicates a bookkeeping defect.
func CountUnderflow(counter, goType string) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindCountUnderflow,
		GoType: goType,
		Detail: fmt.Sprintf("%s count already zero", counter),
		Value:  counter,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Op:     op,
		Detail: detail,
	}
}

// DestroyFailed wraps a deleter failure
func DestroyFailed(goType string, cause error) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDestroy,
		GoType: goType,
		Detail: "payload deleter failed",
		Cause:  cause,
	}
}

// NotFound creates a not-found error for a table handle
func NotFound(op string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseTable,
		Kind:   KindNotFound,
		Op:     op,
		Detail: fmt.Sprintf("handle %d not found", handle),
		Value:  handle,
	}
}

// OutstandingBorrow creates the error returned when a borrowed resource is removed or taken
func OutstandingBorrow(op string, handle, borrows uint32) *Error {
	return &Error{
		Phase:  PhaseTable,
		Kind:   KindOutstandingBorrow,
		Op:     op,
		Detail: fmt.Sprintf("handle %d has %d outstanding borrow(s)", handle, borrows),
		Value:  handle,
	}
}

// Closed creates the error returned by operations on a closed container
func Closed(op, what string) *Error {
	return &Error{
		Phase:  PhaseTable,
		Kind:   KindClosed,
		Op:     op,
		Detail: fmt.Sprintf("%s closed", what),
	}
}

// CompileFailed wraps a module compilation failure
func CompileFailed(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindCompile,
		Detail: fmt.Sprintf("compile module %q", name),
		Value:  name,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
