// Package schema compiles declarative fixed-size binary layouts and
// gives zero-copy, bidirectional access to buffers through them.
//
// # Overview
//
// A layout is declared either in a small textual DSL or as a
// programmatic field list, compiled once into an immutable schema, and
// then bound to any number of byte buffers:
//
//	fm, err := schema.Compile("x: u32  y: u32b  z: bytes[4]", nil)
//	v, err := fm.Bind(buf)
//	x, _ := v.Field("x")       // decode in place
//	_ = v.SetField("y", 0xcafebabe) // write through to buf
//
// # DSL
//
// Fields are an optional name, a colon, and a type; commas between
// fields are optional. A type is a registry name (u8, i16b, f64, ...),
// an integer literal (raw byte span of that size), or a brace-enclosed
// nested struct. Array suffixes use [n] or (n) and stack left to right:
//
//	magic: 4
//	count: u16b
//	pos: { x: i32, y: i32 }
//	samples: f32[16]
//
// A scalar array compiles to one nested group field of n repetitions;
// the group's elements are addressed positionally through its own
// sub-view. A raw-byte array stays one contiguous blob: bytes[4] is a
// single 4-byte field.
//
// # Pipeline
//
//	DSL text → tokens → parse tree → FieldMap (compiled once)
//	  → Bind(buf) → View (cheap, repeatable) → Get/Set per field
//
// Every grammar and schema error surfaces eagerly at Compile or
// NewFieldMap; a schema that constructs never fails later for schema
// reasons. Runtime errors (bounds, overflow) surface at the specific
// access call. Bulk Pack checks arity before writing any byte but does
// not roll back fields already written when a later field fails.
//
// # Offsets
//
// Field offsets are prefix sums of the preceding field sizes; there is
// no implicit padding or alignment. The schema's Size is the sum over
// all fields.
//
// # Thread safety
//
// Compiled schemas (FieldSet, FieldMap) are immutable and safe to
// share. Views are not synchronized: concurrent writers to one buffer
// region are the caller's responsibility to serialize.
package schema
