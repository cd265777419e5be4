package schema

import (
	"encoding/binary"
	"sort"
)

// Registry maps type names to codecs. It is an explicit value threaded
// through Compile and NewFieldMap rather than a hidden global, so
// independent type vocabularies can coexist and tests stay hermetic.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds or replaces a codec under name.
func (r *Registry) Register(name string, c Codec) {
	r.codecs[name] = c
}

// Lookup resolves a type name.
func (r *Registry) Lookup(name string) (Codec, bool) {
	c, ok := r.codecs[name]
	return c, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for name, codec := range r.codecs {
		c.codecs[name] = codec
	}
	return c
}

// DefaultRegistry returns a fresh registry holding the canonical scalar
// vocabulary. Unsuffixed multi-byte integers are little-endian; the b
// suffix selects big-endian. The raw-span type "bytes" is a compiler
// builtin, not a registry entry, because its size comes from the array
// count.
func DefaultRegistry() *Registry {
	le := binary.ByteOrder(binary.LittleEndian)
	be := binary.ByteOrder(binary.BigEndian)

	r := NewRegistry()
	entries := []struct {
		codec Codec
		names []string
	}{
		{uintCodec{name: "u8", size: 1, order: le}, []string{"u8", "byte"}},
		{intCodec{name: "i8", size: 1, order: le}, []string{"i8", "char"}},
		{uintCodec{name: "u16", size: 2, order: le}, []string{"u16", "u16l"}},
		{uintCodec{name: "u16b", size: 2, order: be}, []string{"u16b"}},
		{uintCodec{name: "u32", size: 4, order: le}, []string{"u32", "u32l"}},
		{uintCodec{name: "u32b", size: 4, order: be}, []string{"u32b"}},
		{uintCodec{name: "u64", size: 8, order: le}, []string{"u64", "u64l"}},
		{uintCodec{name: "u64b", size: 8, order: be}, []string{"u64b"}},
		{intCodec{name: "i16", size: 2, order: le}, []string{"i16", "i16l"}},
		{intCodec{name: "i16b", size: 2, order: be}, []string{"i16b"}},
		{intCodec{name: "i32", size: 4, order: le}, []string{"i32", "i32l"}},
		{intCodec{name: "i32b", size: 4, order: be}, []string{"i32b"}},
		{intCodec{name: "i64", size: 8, order: le}, []string{"i64", "i64l"}},
		{intCodec{name: "i64b", size: 8, order: be}, []string{"i64b"}},
		{float32Codec{}, []string{"f32"}},
		{float64Codec{}, []string{"f64"}},
	}
	for _, e := range entries {
		for _, name := range e.names {
			r.Register(name, e.codec)
		}
	}
	return r
}
