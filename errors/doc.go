// Package errors provides structured error types for the ownership library.
//
// Errors are categorized by Phase (which handle operation was running) and Kind
// (error category). The Error type carries the operation name, the Go payload type,
// an optional offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTable, errors.KindNotFound).
//		Op("Borrow").
//		Value(handle).
//		Detail("handle %d not found", handle).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EmptyHandle("Shared.Value", "*main.Config")
//	err := errors.CountUnderflow("strong", "*main.Config")
//
// Programmer errors (dereferencing an empty handle, counter underflow) are raised as
// panics carrying an *Error. Everything else is returned.
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on (Phase, Kind), so the exported sentinels work as errors.Is targets.
package errors
