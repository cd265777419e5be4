package schema

import (
	"github.com/fieldview/fieldview/errors"
)

// Field is one entry of a programmatic schema spec: an optional name
// and a type. Type may be a Codec (including a nested *FieldSet or
// *FieldMap), a DSL fragment string describing exactly one field, an
// int (raw byte span shorthand), or a nested []Field.
type Field struct {
	Type any
	Name string
}

// FieldMap is a FieldSet with a partial name table. Names must be
// unique within one nesting level; unnamed fields stay addressable by
// position only. Nested FieldMaps keep independent name scopes.
type FieldMap struct {
	FieldSet
	names  map[string]int
	labels []string
}

// NewFieldMap compiles a programmatic field spec against a registry.
// reg may be nil to use the default vocabulary. All validation happens
// here; a FieldMap that constructs successfully never fails later for
// schema reasons.
func NewFieldMap(fields []Field, reg *Registry) (*FieldMap, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	codecs := make([]Codec, len(fields))
	names := make(map[string]int)
	labels := make([]string, len(fields))

	for i, f := range fields {
		name, codec, err := resolveField(f, reg)
		if err != nil {
			return nil, err
		}
		codecs[i] = codec
		labels[i] = name
		if name != "" {
			if _, dup := names[name]; dup {
				return nil, errors.DuplicateName(name)
			}
			names[name] = i
		}
	}

	fs, err := NewFieldSet(codecs)
	if err != nil {
		return nil, err
	}
	return &FieldMap{FieldSet: *fs, names: names, labels: labels}, nil
}

func resolveField(f Field, reg *Registry) (string, Codec, error) {
	name := f.Name

	switch t := f.Type.(type) {
	case Codec:
		return name, t, nil

	case int:
		if t <= 0 {
			return "", nil, errors.Schema("raw span size must be positive, got %d", t)
		}
		return name, Bytes(t), nil

	case string:
		inner, err := parseFragment(t)
		if err != nil {
			return "", nil, err
		}
		if inner.Name != "" {
			if name != "" {
				return "", nil, errors.Schema("field named twice: %q and %q", name, inner.Name)
			}
			name = inner.Name
		}
		codec, err := compileType(inner.Type, reg)
		if err != nil {
			return "", nil, err
		}
		return name, codec, nil

	case []Field:
		nested, err := NewFieldMap(t, reg)
		if err != nil {
			return "", nil, err
		}
		return name, nested, nil

	default:
		return "", nil, errors.Schema("invalid field type %T", f.Type)
	}
}

// Names returns the name table of this level.
func (fm *FieldMap) Names() map[string]int {
	out := make(map[string]int, len(fm.names))
	for k, v := range fm.names {
		out[k] = v
	}
	return out
}

// Label returns the name of field i, or "" when it is unnamed.
func (fm *FieldMap) Label(i int) string {
	if i < 0 || i >= len(fm.labels) {
		return ""
	}
	return fm.labels[i]
}

// Index resolves a field name at this level.
func (fm *FieldMap) Index(name string) (int, bool) {
	i, ok := fm.names[name]
	return i, ok
}

// Bind attaches the schema to buf, returning a view with keyed access.
func (fm *FieldMap) Bind(buf []byte) (*View, error) {
	if len(buf) < fm.size {
		return nil, errors.ShortBuffer(len(buf), fm.size)
	}
	return &View{fields: &fm.FieldSet, names: fm.names, labels: fm.labels, data: buf}, nil
}

// Unpack implements Codec for nesting; the nested view keeps this
// level's name table.
func (fm *FieldMap) Unpack(b []byte) (any, error) {
	return fm.Bind(b)
}
