// Package fieldview turns a compact field-list DSL into binary layouts
// with live, zero-copy views over existing buffers.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	fieldview/           Root package with Compile/MustCompile convenience entry points
//	├── schema/          DSL compiler, codec registry, field sets and bound views
//	├── buf/             Owned mutable byte buffers and bit-level views
//	├── hexdump/         Grouped hexdump formatting with folding and snipping
//	└── errors/          Structured error types shared across the pipeline
//
// # Quick Start
//
// Compile a layout and bind it over a buffer:
//
//	fm, err := fieldview.Compile("x: u32  y: u32b  crc: bytes[4]")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := fm.Bind(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	x, _ := v.Field("x")        // decoded uint64
//	v.SetField("y", 0xcafebabe) // writes through to data
//
// Views alias the buffer they are bound to: reads decode in place and
// writes mutate the original bytes at the field's offset. Binding the
// same buffer through several schemas gives several simultaneous
// interpretations of the same memory.
//
// # The DSL
//
// A schema is a list of fields, comma or whitespace separated. Each
// field is an optional name, a colon, and a type: a registered scalar
// (u8, i16, u32b, f64, ...), the raw keyword bytes, a byte-count
// literal, or a brace-enclosed nested struct. Any type may carry array
// suffixes such as [4] or (2). See the schema package for the full
// grammar and the default type table.
package fieldview
