// Package errors provides structured error types for the fieldview library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: source offset, field path, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindSchema).
//		Path("header", "magic").
//		Detail("field %q already defined", "magic").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Syntax(12, "invalid token")
//	err := errors.Overflow(errors.PhaseAccess, path, 300, "u8")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree, so
// callers can test categories without string comparison:
//
//	if errors.IsSchema(err) { ... }
package errors
