package fieldview

import (
	"github.com/fieldview/fieldview/schema"
)

// Compile builds a layout from DSL source using the default type
// table. Use schema.Compile directly to supply a custom registry.
func Compile(src string) (*schema.FieldMap, error) {
	return schema.Compile(src, nil)
}

// MustCompile is Compile for schemas known at build time; it panics on
// error.
func MustCompile(src string) *schema.FieldMap {
	fm, err := Compile(src)
	if err != nil {
		panic("fieldview: " + err.Error())
	}
	return fm
}

// Bind compiles src and binds the result over data in one step.
func Bind(src string, data []byte) (*schema.View, error) {
	fm, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return fm.Bind(data)
}
