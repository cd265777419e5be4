package buf

import (
	"strings"

	"github.com/fieldview/fieldview/errors"
)

// BitView exposes individual bits of a byte slice. Bit 0 of the view
// is the least significant bit of the first byte, bit 8 the least
// significant bit of the second, and so on. The view aliases the
// slice: setting a bit mutates the underlying byte.
type BitView struct {
	data  []byte
	start int
	n     int
}

// NewBitView returns a view over all bits of data.
func NewBitView(data []byte) *BitView {
	return &BitView{data: data, n: len(data) * 8}
}

// Len returns the number of bits in the view.
func (v *BitView) Len() int { return v.n }

// Slice returns a sub-view of bits [i, j).
func (v *BitView) Slice(i, j int) (*BitView, error) {
	if i < 0 || j < i || j > v.n {
		return nil, errors.New(errors.PhaseAccess, errors.KindBounds).
			Detail("bit slice [%d:%d] out of range (view has %d bits)", i, j, v.n).
			Build()
	}
	return &BitView{data: v.data, start: v.start + i, n: j - i}, nil
}

// Bit returns bit i as 0 or 1.
func (v *BitView) Bit(i int) (uint, error) {
	if i < 0 || i >= v.n {
		return 0, errors.IndexOutOfRange(i, v.n)
	}
	idx := v.start + i
	return uint(v.data[idx/8]>>(idx%8)) & 1, nil
}

// SetBit sets bit i to 1 if val is nonzero, 0 otherwise.
func (v *BitView) SetBit(i int, val uint) error {
	if i < 0 || i >= v.n {
		return errors.IndexOutOfRange(i, v.n)
	}
	idx := v.start + i
	mask := byte(1) << (idx % 8)
	if val != 0 {
		v.data[idx/8] |= mask
	} else {
		v.data[idx/8] &^= mask
	}
	return nil
}

// Toggle flips bit i.
func (v *BitView) Toggle(i int) error {
	if i < 0 || i >= v.n {
		return errors.IndexOutOfRange(i, v.n)
	}
	idx := v.start + i
	v.data[idx/8] ^= byte(1) << (idx % 8)
	return nil
}

// SetAll sets every bit in the view to 1.
func (v *BitView) SetAll() {
	for i := 0; i < v.n; i++ {
		v.SetBit(i, 1)
	}
}

// ClearAll sets every bit in the view to 0.
func (v *BitView) ClearAll() {
	for i := 0; i < v.n; i++ {
		v.SetBit(i, 0)
	}
}

// Invert flips every bit in the view.
func (v *BitView) Invert() {
	for i := 0; i < v.n; i++ {
		v.Toggle(i)
	}
}

// Any reports whether at least one bit is set.
func (v *BitView) Any() bool {
	for i := 0; i < v.n; i++ {
		if b, _ := v.Bit(i); b != 0 {
			return true
		}
	}
	return false
}

// OnesCount returns the number of set bits.
func (v *BitView) OnesCount() int {
	count := 0
	for i := 0; i < v.n; i++ {
		if b, _ := v.Bit(i); b != 0 {
			count++
		}
	}
	return count
}

// Uint assembles the view's bits into an integer. With bit 0 as the
// most significant (the default reading order) a view of "101" yields
// 5. Pass littleEndian to treat bit 0 as the least significant
// instead. Views longer than 64 bits cannot be assembled.
func (v *BitView) Uint(littleEndian bool) (uint64, error) {
	if v.n > 64 {
		return 0, errors.New(errors.PhaseAccess, errors.KindOverflow).
			Detail("view has %d bits, at most 64 fit in an integer", v.n).
			Build()
	}
	var out uint64
	for i := 0; i < v.n; i++ {
		b, _ := v.Bit(i)
		if littleEndian {
			out |= uint64(b) << i
		} else {
			out |= uint64(b) << (v.n - 1 - i)
		}
	}
	return out, nil
}

// SetUint spreads an integer's low bits across the view, mirroring
// Uint's ordering. Bits of n beyond the view's length are ignored.
func (v *BitView) SetUint(n uint64, littleEndian bool) {
	for i := 0; i < v.n; i++ {
		var bit uint64
		if littleEndian {
			bit = (n >> i) & 1
		} else {
			bit = (n >> (v.n - 1 - i)) & 1
		}
		v.SetBit(i, uint(bit))
	}
}

// String renders the view as a string of '0' and '1' runes.
func (v *BitView) String() string {
	var b strings.Builder
	b.Grow(v.n)
	for i := 0; i < v.n; i++ {
		bit, _ := v.Bit(i)
		b.WriteByte('0' + byte(bit))
	}
	return b.String()
}
