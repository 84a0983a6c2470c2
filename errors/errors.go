package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // wire bytes to records
	PhaseEncode   Phase = "encode"   // records to wire bytes
	PhaseStore    Phase = "store"    // record store mutation
	PhaseClassify Phase = "classify" // well-known record interpretation
	PhaseConfig   Phase = "config"   // CLI configuration
	PhaseParse    Phase = "parse"    // message description / container parsing
)

// Kind categorizes the error
type Kind string

const (
	KindTruncated           Kind = "truncated"
	KindOutOfMemory         Kind = "out_of_memory"
	KindInvalidAbbreviation Kind = "invalid_abbreviation"
	KindNotApplicable       Kind = "not_applicable"
	KindTooLarge            Kind = "too_large"
	KindInvalidInput        Kind = "invalid_input"
	KindNoInput             Kind = "no_input"
	KindTrailingData        Kind = "trailing_data"
)

// Kind sentinels. errors.Is(err, ErrTruncated) holds for a truncation in any phase.
var (
	ErrTruncated           = &Error{Kind: KindTruncated}
	ErrOutOfMemory         = &Error{Kind: KindOutOfMemory}
	ErrInvalidAbbreviation = &Error{Kind: KindInvalidAbbreviation}
	ErrNotApplicable       = &Error{Kind: KindNotApplicable}
	ErrTooLarge            = &Error{Kind: KindTooLarge}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrNoInput             = &Error{Kind: KindNoInput}
	ErrTrailingData        = &Error{Kind: KindTrailingData}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// Truncated creates a truncation error for a buffer that holds fewer bytes than required
func Truncated(phase Phase, want, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("not enough data (%d %s; expected %d)", have, plural(have, "byte"), want),
		Value:  have,
	}
}

// OutOfMemory creates an allocation failure error
func OutOfMemory(phase Phase, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("allocating %d %s", size, plural(size, "byte")),
		Value:  size,
	}
}

// InvalidAbbreviation creates an error for a URI abbreviation code outside the table
func InvalidAbbreviation(code byte, tableLen int) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindInvalidAbbreviation,
		Detail: fmt.Sprintf("abbreviation code 0x%02x out of range (table has %d entries)", code, tableLen),
		Value:  code,
	}
}

// NotApplicable creates an error for a record that is not of the requested kind
func NotApplicable(what string) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindNotApplicable,
		Detail: fmt.Sprintf("record is not a %s record", what),
	}
}

// TooLarge creates an error for a field whose length does not fit its wire encoding
func TooLarge(phase Phase, field string, length int, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTooLarge,
		Path:   []string{field},
		Detail: fmt.Sprintf("length %d exceeds %d", length, limit),
		Value:  length,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NoInput creates an error for an empty input buffer
func NoInput(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNoInput,
		Detail: "empty input",
	}
}

// TrailingData creates an error for bytes left over after a strict decode
func TrailingData(phase Phase, offset, remaining int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTrailingData,
		Detail: fmt.Sprintf("%d undecodable %s at offset %d", remaining, plural(remaining, "byte"), offset),
		Value:  offset,
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

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
