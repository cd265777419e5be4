package schema

import "testing"

func TestDefaultRegistrySizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"u8", 1}, {"byte", 1}, {"i8", 1}, {"char", 1},
		{"u16", 2}, {"u16l", 2}, {"u16b", 2},
		{"u32", 4}, {"u32l", 4}, {"u32b", 4},
		{"u64", 8}, {"u64l", 8}, {"u64b", 8},
		{"i16", 2}, {"i16l", 2}, {"i16b", 2},
		{"i32", 4}, {"i32l", 4}, {"i32b", 4},
		{"i64", 8}, {"i64l", 8}, {"i64b", 8},
		{"f32", 4}, {"f64", 8},
	}

	r := DefaultRegistry()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := r.Lookup(tc.name)
			if !ok {
				t.Fatalf("%q not registered", tc.name)
			}
			if c.Size() != tc.size {
				t.Errorf("size: got %d, want %d", c.Size(), tc.size)
			}
		})
	}
}

func TestRegistryIsolation(t *testing.T) {
	// Each DefaultRegistry call and each Clone is independent.
	a := DefaultRegistry()
	b := DefaultRegistry()

	a.Register("version", Bytes(2))
	if _, ok := b.Lookup("version"); ok {
		t.Error("registration leaked into another registry")
	}

	c := b.Clone()
	c.Register("version", Bytes(2))
	if _, ok := b.Lookup("version"); ok {
		t.Error("registration leaked into the cloned-from registry")
	}
}

func TestCustomVocabulary(t *testing.T) {
	r := NewRegistry()
	r.Register("word", lookup(t, "u16b"))

	fm, err := Compile("w: word", r)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v, err := fm.Bind([]byte{0x12, 0x34})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	got, err := v.Field("w")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if got != uint64(0x1234) {
		t.Errorf("got %#x", got)
	}

	// The default vocabulary is absent from a custom registry.
	if _, err := Compile("x: u32", r); err == nil {
		t.Error("expected unknown type error")
	}
}
