package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseTokenize Phase = "tokenize" // DSL lexing
	PhaseParse    Phase = "parse"    // DSL parsing
	PhaseCompile  Phase = "compile"  // schema construction
	PhaseBind     Phase = "bind"     // attaching a schema to a buffer
	PhaseAccess   Phase = "access"   // field get/set/pack
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax       Kind = "syntax"        // malformed DSL text
	KindSchema       Kind = "schema"        // invalid schema construction
	KindBounds       Kind = "bounds"        // buffer or value length violation
	KindOverflow     Kind = "overflow"      // value outside codec range
	KindTypeMismatch Kind = "type_mismatch" // value of wrong Go type
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int // byte offset into DSL source, -1 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
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
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the DSL source offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
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

// Syntax creates a syntax error at a DSL source offset
func Syntax(offset int, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Detail: detail,
		Offset: offset,
	}
}

// BadToken creates a syntax error for an unrecognized character during lexing
func BadToken(offset int, r rune) *Error {
	return &Error{
		Phase:  PhaseTokenize,
		Kind:   KindSyntax,
		Detail: fmt.Sprintf("unrecognized character %q", r),
		Offset: offset,
	}
}

// BadNumber creates a syntax error for an unparseable integer literal
func BadNumber(offset int, text string) *Error {
	return &Error{
		Phase:  PhaseTokenize,
		Kind:   KindSyntax,
		Detail: fmt.Sprintf("invalid integer literal %q", text),
		Offset: offset,
	}
}

// Schema creates a schema construction error
func Schema(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindSchema,
		Detail: detail,
		Offset: -1,
	}
}

// UnknownType creates a schema error for an unresolved type name
func UnknownType(name string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindSchema,
		Detail: fmt.Sprintf("unknown type %q", name),
		Offset: -1,
	}
}

// DuplicateName creates a schema error for a name collision at one nesting level
func DuplicateName(name string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindSchema,
		Detail: fmt.Sprintf("field %q already defined", name),
		Offset: -1,
	}
}

// Arity creates a schema error for a bulk-pack value count mismatch
func Arity(got, want int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindSchema,
		Detail: fmt.Sprintf("incorrect value count: got %d, want %d", got, want),
		Offset: -1,
	}
}

// ShortBuffer creates a bounds error for a buffer smaller than a schema
func ShortBuffer(have, need int) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindBounds,
		Detail: fmt.Sprintf("buffer too small: have %d bytes, schema needs %d", have, need),
		Offset: -1,
	}
}

// SizeMismatch creates a bounds error for a raw-byte field assignment of the wrong length
func SizeMismatch(path []string, got, want int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindBounds,
		Path:   path,
		Detail: fmt.Sprintf("value length %d does not match field size %d", got, want),
		Offset: -1,
	}
}

// IndexOutOfRange creates a bounds error for a field index outside the schema
func IndexOutOfRange(index, length int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindBounds,
		Detail: fmt.Sprintf("field index %d out of range (schema has %d fields)", index, length),
		Value:  index,
		Offset: -1,
	}
}

// Overflow creates an overflow error for a value outside a codec's range
func Overflow(phase Phase, path []string, value any, codecName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, codecName),
		Value:  value,
		Offset: -1,
	}
}

// TypeMismatch creates an error for a value whose Go type a codec cannot accept
func TypeMismatch(phase Phase, path []string, value any, codecName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("cannot pack %T into %s", value, codecName),
		Value:  value,
		Offset: -1,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}

// Kind-check helpers. These match on Kind alone so a caller does not need
// to care which phase produced the error.

func isKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsSyntax reports whether err is a DSL syntax error
func IsSyntax(err error) bool { return isKind(err, KindSyntax) }

// IsSchema reports whether err is a schema construction or arity error
func IsSchema(err error) bool { return isKind(err, KindSchema) }

// IsBounds reports whether err is a bounds violation
func IsBounds(err error) bool { return isKind(err, KindBounds) }

// IsOverflow reports whether err is a value range overflow
func IsOverflow(err error) bool { return isKind(err, KindOverflow) }
