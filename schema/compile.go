package schema

import (
	"go.uber.org/zap"

	"github.com/fieldview/fieldview/errors"
	"github.com/fieldview/fieldview/schema/internal/ast"
	"github.com/fieldview/fieldview/schema/internal/parser"
	"github.com/fieldview/fieldview/schema/internal/token"
)

// rawTypeName is the compiler-builtin raw span type. Its size comes
// from array counts: bytes[4] is a 4-byte blob, bare bytes a single
// raw byte.
const rawTypeName = "bytes"

// Compile parses fieldspec source and compiles it against reg, which
// may be nil to use the default vocabulary. All grammar and schema
// validation happens here, never at field access time.
func Compile(src string, reg *Registry) (*FieldMap, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	toks, err := token.Tokenize(src)
	if err != nil {
		return nil, err
	}
	fields, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	fm, err := compileFields(fields, reg)
	if err != nil {
		return nil, err
	}
	Logger().Debug("compiled schema",
		zap.Int("fields", fm.Len()),
		zap.Int("size", fm.Size()))
	return fm, nil
}

// parseFragment parses a DSL string that must describe exactly one
// field, for use as a type inside a programmatic spec.
func parseFragment(src string) (ast.Field, error) {
	toks, err := token.Tokenize(src)
	if err != nil {
		return ast.Field{}, err
	}
	fields, err := parser.Parse(toks)
	if err != nil {
		return ast.Field{}, err
	}
	if len(fields) != 1 {
		return ast.Field{}, errors.Schema("type fragment %q must describe exactly one field, got %d", src, len(fields))
	}
	return fields[0], nil
}

func compileFields(fields []ast.Field, reg *Registry) (*FieldMap, error) {
	specs := make([]Field, len(fields))
	for i, f := range fields {
		codec, err := compileType(f.Type, reg)
		if err != nil {
			return nil, err
		}
		specs[i] = Field{Name: f.Name, Type: codec}
	}
	return NewFieldMap(specs, reg)
}

func compileType(t ast.Type, reg *Registry) (Codec, error) {
	var base Codec

	switch t.Kind {
	case ast.Named:
		if t.Name == rawTypeName {
			base = Bytes(1)
		} else if c, ok := reg.Lookup(t.Name); ok {
			base = c
		} else {
			return nil, errors.UnknownType(t.Name)
		}
	case ast.Span:
		if t.Span <= 0 {
			return nil, errors.Schema("raw span size must be positive, got %d", t.Span)
		}
		base = Bytes(t.Span)
	case ast.Struct:
		nested, err := compileFields(t.Fields, reg)
		if err != nil {
			return nil, err
		}
		base = nested
	}

	for _, n := range t.Counts {
		if n <= 0 {
			return nil, errors.Schema("array length must be positive, got %d", n)
		}
		// A raw span stays one contiguous blob: bytes[4] is a single
		// 4-byte field, not four byte fields. Any other base expands
		// to n consecutive repetitions grouped as one nested field.
		if bc, ok := base.(bytesCodec); ok {
			base = Bytes(bc.n * n)
			continue
		}
		group, err := Repeat(base, n)
		if err != nil {
			return nil, err
		}
		base = group
	}

	return base, nil
}
