package schema

import (
	"fmt"

	"github.com/fieldview/fieldview/errors"
)

// FieldSet is a compiled, immutable sequence of codecs with precomputed
// byte offsets. offsets[i] is the prefix sum of the sizes of fields
// 0..i-1; size is the sum over all fields. A FieldSet is itself a Codec,
// so schemas compose by nesting.
type FieldSet struct {
	codecs  []Codec
	offsets []int
	size    int
}

// NewFieldSet compiles an ordered codec list. An empty list is rejected.
func NewFieldSet(codecs []Codec) (*FieldSet, error) {
	if len(codecs) == 0 {
		return nil, errors.Schema("can't create empty field set")
	}
	offsets := make([]int, len(codecs))
	size := 0
	for i, c := range codecs {
		offsets[i] = size
		size += c.Size()
	}
	return &FieldSet{codecs: codecs, offsets: offsets, size: size}, nil
}

// Repeat compiles n consecutive repetitions of one codec — the schema
// form of a scalar array.
func Repeat(c Codec, n int) (*FieldSet, error) {
	if n <= 0 {
		return nil, errors.Schema("array length must be positive, got %d", n)
	}
	codecs := make([]Codec, n)
	for i := range codecs {
		codecs[i] = c
	}
	return NewFieldSet(codecs)
}

// Len returns the number of fields.
func (fs *FieldSet) Len() int { return len(fs.codecs) }

// Size returns the total byte size of the layout.
func (fs *FieldSet) Size() int { return fs.size }

// Offset returns the byte offset of field i.
func (fs *FieldSet) Offset(i int) int { return fs.offsets[i] }

// Codec returns the codec of field i.
func (fs *FieldSet) Codec(i int) Codec { return fs.codecs[i] }

func (fs *FieldSet) String() string {
	return fmt.Sprintf("struct(%d fields, %d bytes)", len(fs.codecs), fs.size)
}

// window carves field i's byte range out of buf.
func (fs *FieldSet) window(buf []byte, i int) ([]byte, error) {
	if i < 0 || i >= len(fs.codecs) {
		return nil, errors.IndexOutOfRange(i, len(fs.codecs))
	}
	off := fs.offsets[i]
	end := off + fs.codecs[i].Size()
	if len(buf) < end {
		return nil, errors.New(errors.PhaseAccess, errors.KindBounds).
			Detail("buffer too small: have %d bytes, field %d ends at %d", len(buf), i, end).
			Build()
	}
	return buf[off:end], nil
}

// Get decodes field i from buf. Raw-byte and nested fields decode to
// live views over buf.
func (fs *FieldSet) Get(buf []byte, i int) (any, error) {
	w, err := fs.window(buf, i)
	if err != nil {
		return nil, err
	}
	return fs.codecs[i].Unpack(w)
}

// Set encodes v into field i of buf, writing in place.
func (fs *FieldSet) Set(buf []byte, i int, v any) error {
	w, err := fs.window(buf, i)
	if err != nil {
		return err
	}
	return fs.codecs[i].Pack(w, v)
}

// Pack bulk-assigns all fields of buf from v, which must be a []any (or
// a *View to copy from) whose length exactly matches the field count.
// Arity is validated before any byte is written; a per-field failure
// after that leaves fields written earlier in the same call mutated.
func (fs *FieldSet) Pack(buf []byte, v any) error {
	var values []any
	switch src := v.(type) {
	case []any:
		values = src
	case *View:
		snap, err := src.Values()
		if err != nil {
			return err
		}
		values = snap
	default:
		return errors.TypeMismatch(errors.PhaseAccess, nil, v, fs.String())
	}
	if len(values) != len(fs.codecs) {
		return errors.Arity(len(values), len(fs.codecs))
	}
	for i, val := range values {
		if err := fs.Set(buf, i, val); err != nil {
			return err
		}
	}
	return nil
}

// Unpack implements Codec: a nested field set decodes to a live view
// over its window.
func (fs *FieldSet) Unpack(b []byte) (any, error) {
	return fs.Bind(b)
}

// Bind attaches the schema to buf and returns a zero-copy view. It
// fails when buf is shorter than the schema; extra trailing bytes are
// ignored. Binding is cheap and may be repeated freely.
func (fs *FieldSet) Bind(buf []byte) (*View, error) {
	if len(buf) < fs.size {
		return nil, errors.ShortBuffer(len(buf), fs.size)
	}
	return &View{fields: fs, data: buf}, nil
}
