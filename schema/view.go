package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldview/fieldview/errors"
)

// View is a live, zero-copy accessor pairing a compiled schema with a
// buffer window. It borrows the buffer, never owns it: every read and
// write aliases the original storage at the field's absolute offset.
//
// Two views over disjoint regions of one buffer never interfere; views
// over overlapping regions observe each other's writes. That aliasing
// is intentional — it allows multiple simultaneous interpretations of
// one memory region.
//
// A View carries no synchronization. Concurrent writers to the same
// region must be serialized by the caller, and the buffer owner must
// not shrink the backing storage below the schema size while the view
// is alive.
type View struct {
	fields *FieldSet
	names  map[string]int
	labels []string
	data   []byte
}

// Len returns the number of fields.
func (v *View) Len() int { return v.fields.Len() }

// Schema returns the compiled field set backing this view.
func (v *View) Schema() *FieldSet { return v.fields }

// Raw returns the aliased byte window of the whole layout.
func (v *View) Raw() []byte { return v.data[:v.fields.Size()] }

// Index decodes field i.
func (v *View) Index(i int) (any, error) {
	val, err := v.fields.Get(v.data, i)
	return val, v.label(err, i)
}

// SetIndex encodes val into field i, mutating the backing buffer.
func (v *View) SetIndex(i int, val any) error {
	return v.label(v.fields.Set(v.data, i, val), i)
}

// Field decodes a named field.
func (v *View) Field(name string) (any, error) {
	i, err := v.resolve(name)
	if err != nil {
		return nil, err
	}
	return v.Index(i)
}

// SetField encodes val into a named field.
func (v *View) SetField(name string, val any) error {
	i, err := v.resolve(name)
	if err != nil {
		return err
	}
	return v.SetIndex(i, val)
}

func (v *View) resolve(name string) (int, error) {
	if i, ok := v.names[name]; ok {
		return i, nil
	}
	return 0, errors.New(errors.PhaseAccess, errors.KindSchema).
		Detail("no field named %q", name).
		Build()
}

// Slice returns a materialized snapshot of the decoded values of
// fields [i, j). The returned slice is a copy; its scalar elements are
// plain values, while raw-byte and nested elements remain live views.
func (v *View) Slice(i, j int) ([]any, error) {
	n := v.fields.Len()
	if i < 0 || j < i || j > n {
		return nil, errors.New(errors.PhaseAccess, errors.KindBounds).
			Detail("slice [%d:%d] out of range (schema has %d fields)", i, j, n).
			Build()
	}
	out := make([]any, 0, j-i)
	for k := i; k < j; k++ {
		val, err := v.Index(k)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// Values snapshots all field values, in order.
func (v *View) Values() ([]any, error) {
	return v.Slice(0, v.fields.Len())
}

// Bytes returns a copy of the layout's bytes, detached from the
// backing buffer.
func (v *View) Bytes() []byte {
	out := make([]byte, v.fields.Size())
	copy(out, v.Raw())
	return out
}

// label attaches the field's name (or index) to an access error that
// has no path yet.
func (v *View) label(err error, i int) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*errors.Error)
	if !ok || len(e.Path) > 0 {
		return err
	}
	if i >= 0 && i < len(v.labels) && v.labels[i] != "" {
		e.Path = []string{v.labels[i]}
	} else {
		e.Path = []string{"[" + strconv.Itoa(i) + "]"}
	}
	return e
}

// String renders the decoded fields, one per line, for debugging.
func (v *View) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%d fields:", v.fields.Len())
	for i := 0; i < v.fields.Len(); i++ {
		b.WriteString("\n   ")
		if i < len(v.labels) && v.labels[i] != "" {
			b.WriteString(v.labels[i])
			b.WriteString(" = ")
		} else {
			fmt.Fprintf(&b, "[%d]: ", i)
		}
		val, err := v.Index(i)
		if err != nil {
			fmt.Fprintf(&b, "<error: %v>", err)
			continue
		}
		switch x := val.(type) {
		case []byte:
			fmt.Fprintf(&b, "%x", x)
		case *View:
			b.WriteString(strings.ReplaceAll(x.String(), "\n", "\n   "))
		default:
			fmt.Fprintf(&b, "%v", x)
		}
	}
	b.WriteString("\n>")
	return b.String()
}
