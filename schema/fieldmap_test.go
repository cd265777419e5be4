package schema

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/fieldview/fieldview/errors"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestProgrammaticSpec(t *testing.T) {
	fm, err := NewFieldMap([]Field{
		{Name: "a", Type: "u16"},
		{Name: "b", Type: "u32"},
		{Name: "c", Type: "u64"},
		{Name: "d", Type: 10},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if fm.Size() != 2+4+8+10 {
		t.Fatalf("size: got %d", fm.Size())
	}

	data := unhex(t, "1234567890abcdef"+"1234567890abcdef"+"1234567890abcdef")
	v, err := fm.Bind(data)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	a, _ := v.Field("a")
	if a != uint64(0x3412) {
		t.Errorf("a: got %#x", a)
	}
	b, _ := v.Field("b")
	if b != uint64(0xab907856) {
		t.Errorf("b: got %#x", b)
	}
	d, _ := v.Field("d")
	if !bytes.Equal(d.([]byte), data[14:24]) {
		t.Errorf("d: got % x", d)
	}
}

func TestProgrammaticNested(t *testing.T) {
	inner, err := NewFieldMap([]Field{
		{Name: "a", Type: "u16"},
		{Name: "b", Type: "u32"},
	}, nil)
	if err != nil {
		t.Fatalf("inner: %v", err)
	}

	fm, err := NewFieldMap([]Field{
		{Name: "x", Type: "u16"},
		{Name: "y", Type: "u16"},
		{Name: "z", Type: inner},
	}, nil)
	if err != nil {
		t.Fatalf("outer: %v", err)
	}

	if fm.Size() != 2+2+6 {
		t.Fatalf("size: got %d", fm.Size())
	}

	data := append([]byte("AABB"), unhex(t, "1234567890ab")...)
	v, err := fm.Bind(data)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	z, err := v.Field("z")
	if err != nil {
		t.Fatalf("z: %v", err)
	}
	sub := z.(*View)
	za, _ := sub.Field("a")
	if za != uint64(0x3412) {
		t.Errorf("z.a: got %#x", za)
	}
}

func TestProgrammaticNestedList(t *testing.T) {
	fm, err := NewFieldMap([]Field{
		{Name: "foo", Type: "i16"},
		{Name: "bar", Type: "i16"},
		{Name: "bazz", Type: []Field{
			{Name: "a", Type: "u16"},
			{Type: "u32"},
			{Name: "c", Type: "u64"},
		}},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if fm.Size() != 2+2+14 {
		t.Errorf("size: got %d", fm.Size())
	}
}

func TestFragmentTypes(t *testing.T) {
	// A string type may be a full one-field DSL fragment, including an
	// array suffix or a name of its own.
	fm, err := NewFieldMap([]Field{
		{Name: "foo", Type: "i16[2]"},
		{Type: "named: u32"},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if fm.Size() != 4+4 {
		t.Errorf("size: got %d", fm.Size())
	}
	if i, ok := fm.Index("named"); !ok || i != 1 {
		t.Errorf("inner name not adopted: %v %v", i, ok)
	}
}

func TestFragmentNamedTwice(t *testing.T) {
	_, err := NewFieldMap([]Field{
		{Name: "outer", Type: "inner: u32"},
	}, nil)
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestFragmentMultipleFields(t *testing.T) {
	_, err := NewFieldMap([]Field{
		{Name: "x", Type: "u8, u8"},
	}, nil)
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	_, err := NewFieldMap([]Field{
		{Name: "a", Type: "u8"},
		{Name: "a", Type: "u8"},
	}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestNestedScopesIndependent(t *testing.T) {
	// The same name may appear at different nesting levels.
	fm, err := NewFieldMap([]Field{
		{Name: "a", Type: "u8"},
		{Name: "nested", Type: []Field{
			{Name: "a", Type: "u16"},
		}},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if fm.Size() != 3 {
		t.Errorf("size: got %d", fm.Size())
	}
}

func TestEmptySpecRejected(t *testing.T) {
	_, err := NewFieldMap(nil, nil)
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestInvalidFieldType(t *testing.T) {
	_, err := NewFieldMap([]Field{
		{Name: "x", Type: 3.14},
	}, nil)
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestLabelsAndNames(t *testing.T) {
	fm, err := NewFieldMap([]Field{
		{Name: "a", Type: "u8"},
		{Type: "u8"},
		{Name: "c", Type: "u8"},
	}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if fm.Label(0) != "a" || fm.Label(1) != "" || fm.Label(2) != "c" {
		t.Errorf("labels: %q %q %q", fm.Label(0), fm.Label(1), fm.Label(2))
	}
	names := fm.Names()
	if len(names) != 2 || names["a"] != 0 || names["c"] != 2 {
		t.Errorf("names: %v", names)
	}
}
