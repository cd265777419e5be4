package schema

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/fieldview/fieldview/errors"
)

// End-to-end DSL scenarios.

func TestMixedEndianAndRawSpan(t *testing.T) {
	fm, err := Compile("x: u32  y: u32b  z: bytes[4]", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	data := unhex(t, "deadbeefaabbccdd01234567")
	v, err := fm.Bind(data)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	x, err := v.Field("x")
	if err != nil {
		t.Fatalf("x: %v", err)
	}
	if x != uint64(0xefbeadde) {
		t.Errorf("x: got %#x, want 0xefbeadde", x)
	}

	y, err := v.Field("y")
	if err != nil {
		t.Fatalf("y: %v", err)
	}
	if y != uint64(0xaabbccdd) {
		t.Errorf("y: got %#x, want 0xaabbccdd", y)
	}

	z, err := v.Field("z")
	if err != nil {
		t.Fatalf("z: %v", err)
	}
	if !bytes.Equal(z.([]byte), unhex(t, "01234567")) {
		t.Errorf("z: got % x", z)
	}

	// Writing a field mutates the backing buffer in place.
	if err := v.SetField("y", uint64(0xcafebabe)); err != nil {
		t.Fatalf("set y: %v", err)
	}
	if got := hex.EncodeToString(data); got != "deadbeefcafebabe01234567" {
		t.Errorf("buffer after write: %s", got)
	}
}

func TestScalarArray(t *testing.T) {
	fm, err := Compile("a: u16[3]", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if fm.Size() != 6 {
		t.Fatalf("size: got %d", fm.Size())
	}

	v, err := fm.Bind(unhex(t, "010002000300"))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	a, err := v.Field("a")
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	group := a.(*View)
	if group.Len() != 3 {
		t.Fatalf("group len: got %d", group.Len())
	}
	for i, want := range []uint64{1, 2, 3} {
		got, err := group.Index(i)
		if err != nil {
			t.Fatalf("element %d: %v", i, err)
		}
		if got != want {
			t.Errorf("element %d: got %v, want %v", i, got, want)
		}
	}
}

func TestNestedStructRoundTrip(t *testing.T) {
	fm, err := Compile("p: { x: i16, y: i16 }", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	buf := make([]byte, fm.Size())
	v, err := fm.Bind(buf)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	p, err := v.Field("p")
	if err != nil {
		t.Fatalf("p: %v", err)
	}
	sub := p.(*View)
	if err := sub.SetField("x", int64(-1)); err != nil {
		t.Fatalf("set x: %v", err)
	}
	if err := sub.SetField("y", int64(2)); err != nil {
		t.Fatalf("set y: %v", err)
	}

	// Re-bind a fresh view over the same bytes and read back.
	v2, err := fm.Bind(buf)
	if err != nil {
		t.Fatalf("rebind: %v", err)
	}
	p2, _ := v2.Field("p")
	x, _ := p2.(*View).Field("x")
	y, _ := p2.(*View).Field("y")
	if x != int64(-1) || y != int64(2) {
		t.Errorf("round trip: x=%v y=%v", x, y)
	}
}

func TestDuplicateNameFailsCompile(t *testing.T) {
	_, err := Compile("a:u8, a:u8", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestEmptySourceFailsCompile(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t"} {
		if _, err := Compile(src, nil); !errors.IsSchema(err) {
			t.Errorf("%q: expected schema error, got %v", src, err)
		}
	}
}

func TestUnknownTypeFailsCompile(t *testing.T) {
	_, err := Compile("x: frob", nil)
	if !errors.IsSchema(err) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestRawSpanAssignmentWrongLength(t *testing.T) {
	fm, err := Compile("z: bytes[4]", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	data := unhex(t, "01234567")
	v, err := fm.Bind(data)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	err = v.SetField("z", []byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsBounds(err) {
		t.Errorf("expected bounds error, got %v", err)
	}
	if !bytes.Equal(data, unhex(t, "01234567")) {
		t.Errorf("field mutated on failed assignment: % x", data)
	}
}

func TestScalarRoundTripWholeSchema(t *testing.T) {
	fm, err := Compile("a: u8, b: u16b, c: i32, d: f64", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	want := []any{uint64(7), uint64(0x1234), int64(-5), float64(2.5)}
	buf := make([]byte, fm.Size())
	if err := fm.Pack(buf, want); err != nil {
		t.Fatalf("pack: %v", err)
	}

	v, err := fm.Bind(buf)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	got, err := v.Values()
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len: %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBytesKeywordCollapses(t *testing.T) {
	tests := []struct {
		name string
		src  string
		size int
		n    int // top-level field count
	}{
		{"sized", "bytes[4]", 4, 1},
		{"bare_is_one_byte", "bytes", 1, 1},
		{"stacked_multiplies", "bytes[4][2]", 8, 1},
		{"literal_span", "8", 8, 1},
		{"literal_with_count", "4[2]", 8, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fm, err := Compile(tc.src, nil)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if fm.Size() != tc.size {
				t.Errorf("size: got %d, want %d", fm.Size(), tc.size)
			}
			if fm.Len() != tc.n {
				t.Errorf("len: got %d, want %d", fm.Len(), tc.n)
			}
		})
	}
}

func TestStructArray(t *testing.T) {
	fm, err := Compile("pts: { x: u8, y: u8 }[2]", nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if fm.Size() != 4 {
		t.Fatalf("size: got %d", fm.Size())
	}

	v, err := fm.Bind([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	pts, err := v.Field("pts")
	if err != nil {
		t.Fatalf("pts: %v", err)
	}
	group := pts.(*View)
	second, err := group.Index(1)
	if err != nil {
		t.Fatalf("element 1: %v", err)
	}
	y, err := second.(*View).Field("y")
	if err != nil {
		t.Fatalf("y: %v", err)
	}
	if y != uint64(4) {
		t.Errorf("pts[1].y: got %v", y)
	}
}

func TestCompileEagerValidation(t *testing.T) {
	// Compile-time failures never produce a schema.
	bad := []string{
		"x: u32[",
		"x: {y: u8",
		"x:",
		": u8",
		"x: nosuch",
		"a:u8 a:u16",
	}
	for _, src := range bad {
		if fm, err := Compile(src, nil); err == nil {
			t.Errorf("%q: expected error, got schema %v", src, fm)
		}
	}
}
