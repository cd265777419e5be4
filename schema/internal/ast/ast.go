// Package ast holds the parse tree produced by the fieldspec parser.
package ast

type Kind int

const (
	// Named is a reference to a registry type, e.g. "u32".
	Named Kind = iota
	// Span is an integer-literal shorthand for a raw byte span.
	Span
	// Struct is a brace-enclosed list of nested fields.
	Struct
)

// Type is the parsed type of one field. Counts holds stacked array
// suffixes in source order; each wraps everything to its left.
type Type struct {
	Name   string  // registry type name, when Kind == Named
	Fields []Field // nested body, when Kind == Struct
	Counts []int
	Span   int // byte count, when Kind == Span
	Kind   Kind
}

// Field is one field specification: an optional name and a type.
// An empty Name means the field is addressable by position only.
type Field struct {
	Name string
	Type Type
}
