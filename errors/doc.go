// Package errors provides structured error types for the go-ndef library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a detail message, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTruncated).
//		Value(len(data)).
//		Detail("need %d bytes, have %d", want, len(data)).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(errors.PhaseDecode, want, have)
//	err := errors.OutOfMemory(errors.PhaseStore, 4096)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching is by Phase and Kind, and the Kind sentinels (ErrTruncated,
// ErrOutOfMemory, ...) match an error of that kind in any phase.
package errors
