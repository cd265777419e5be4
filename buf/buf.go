// Package buf provides an owned mutable byte buffer with hex round
// tripping, zero-copy windows and bit-level views. It is the storage
// companion to the schema package: a Buffer's bytes (or any window of
// them) can be handed straight to schema.FieldMap.Bind.
package buf

import (
	"bytes"
	"encoding/hex"

	"github.com/fieldview/fieldview/errors"
)

// Buffer owns a mutable byte region. The zero value is an empty
// buffer. Windows returned by Window and Raw alias the buffer's
// storage; writes through them are visible to every other window.
type Buffer struct {
	data []byte
}

// New returns a zero-filled buffer of the given size.
func New(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{data: make([]byte, size)}
}

// Copy returns a buffer owning a copy of b.
func Copy(b []byte) *Buffer {
	out := make([]byte, len(b))
	copy(out, b)
	return &Buffer{data: out}
}

// FromHex decodes a hex string into a new buffer. Whitespace between
// byte pairs is ignored.
func FromHex(s string) (*Buffer, error) {
	compact := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			compact = append(compact, s[i])
		}
	}
	data, err := hex.DecodeString(string(compact))
	if err != nil {
		return nil, errors.New(errors.PhaseBind, errors.KindSyntax).
			Detail("invalid hex input: %v", err).
			Cause(err).
			Build()
	}
	return &Buffer{data: data}, nil
}

// Len returns the buffer size in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// At returns the byte at index i.
func (b *Buffer) At(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, b.rangeErr(i)
	}
	return b.data[i], nil
}

// SetAt overwrites the byte at index i.
func (b *Buffer) SetAt(i int, v byte) error {
	if i < 0 || i >= len(b.data) {
		return b.rangeErr(i)
	}
	b.data[i] = v
	return nil
}

func (b *Buffer) rangeErr(i int) error {
	return errors.IndexOutOfRange(i, len(b.data))
}

// Raw returns the buffer's storage. The slice aliases the buffer;
// mutations through it are mutations of the buffer.
func (b *Buffer) Raw() []byte { return b.data }

// Window returns a zero-copy view of bytes [off, off+n). The returned
// slice aliases the buffer's storage.
func (b *Buffer) Window(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(b.data) {
		return nil, errors.New(errors.PhaseAccess, errors.KindBounds).
			Detail("window [%d:%d] out of range (buffer is %d bytes)", off, off+n, len(b.data)).
			Build()
	}
	return b.data[off : off+n : off+n], nil
}

// Fill sets every byte to v.
func (b *Buffer) Fill(v byte) {
	for i := range b.data {
		b.data[i] = v
	}
}

// Hex returns the buffer as a lowercase hex string.
func (b *Buffer) Hex() string { return hex.EncodeToString(b.data) }

// Equal reports whether two buffers hold the same bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	return bytes.Equal(b.data, other.data)
}

// Bits returns a bit-level view over the whole buffer.
func (b *Buffer) Bits() *BitView { return NewBitView(b.data) }

func (b *Buffer) String() string { return b.Hex() }
