package schema

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/fieldview/fieldview/errors"
)

// Codec is a fixed-size encode/decode pair for one field type.
//
// Unpack and Pack operate on a slice holding exactly Size bytes; callers
// (FieldSet, View) carve that window out of the backing buffer, so codecs
// never see neighbouring fields. Raw-byte and composite codecs return
// live views that alias the window rather than copies.
type Codec interface {
	Size() int
	Unpack(b []byte) (any, error)
	Pack(b []byte, v any) error
	String() string
}

// uintCodec encodes unsigned integers of 1, 2, 4 or 8 bytes.
type uintCodec struct {
	order binary.ByteOrder
	name  string
	size  int
}

func (c uintCodec) Size() int      { return c.size }
func (c uintCodec) String() string { return c.name }

func (c uintCodec) Unpack(b []byte) (any, error) {
	return getUint(b, c.size, c.order), nil
}

func (c uintCodec) Pack(b []byte, v any) error {
	u, ok := toUint64(v)
	if !ok {
		return packError(v, c.name)
	}
	if c.size < 8 && u>>(8*uint(c.size)) != 0 {
		return errors.Overflow(errors.PhaseAccess, nil, v, c.name)
	}
	putUint(b, c.size, c.order, u)
	return nil
}

// intCodec encodes two's-complement signed integers of 1, 2, 4 or 8 bytes.
type intCodec struct {
	order binary.ByteOrder
	name  string
	size  int
}

func (c intCodec) Size() int      { return c.size }
func (c intCodec) String() string { return c.name }

func (c intCodec) Unpack(b []byte) (any, error) {
	u := getUint(b, c.size, c.order)
	switch c.size {
	case 1:
		return int64(int8(u)), nil
	case 2:
		return int64(int16(u)), nil
	case 4:
		return int64(int32(u)), nil
	default:
		return int64(u), nil
	}
}

func (c intCodec) Pack(b []byte, v any) error {
	i, ok := toInt64(v)
	if !ok {
		return packError(v, c.name)
	}
	if c.size < 8 {
		bits := uint(8 * c.size)
		min := -(int64(1) << (bits - 1))
		max := int64(1)<<(bits-1) - 1
		if i < min || i > max {
			return errors.Overflow(errors.PhaseAccess, nil, v, c.name)
		}
	}
	putUint(b, c.size, c.order, uint64(i))
	return nil
}

// float32Codec encodes IEEE-754 single precision, little-endian.
type float32Codec struct{}

func (float32Codec) Size() int      { return 4 }
func (float32Codec) String() string { return "f32" }

func (float32Codec) Unpack(b []byte) (any, error) {
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (float32Codec) Pack(b []byte, v any) error {
	f, ok := toFloat64(v)
	if !ok {
		return errors.TypeMismatch(errors.PhaseAccess, nil, v, "f32")
	}
	f32 := float32(f)
	// Finite inputs must stay finite after narrowing.
	if math.IsInf(float64(f32), 0) && !math.IsInf(f, 0) {
		return errors.Overflow(errors.PhaseAccess, nil, v, "f32")
	}
	binary.LittleEndian.PutUint32(b, math.Float32bits(f32))
	return nil
}

// float64Codec encodes IEEE-754 double precision, little-endian.
type float64Codec struct{}

func (float64Codec) Size() int      { return 8 }
func (float64Codec) String() string { return "f64" }

func (float64Codec) Unpack(b []byte) (any, error) {
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (float64Codec) Pack(b []byte, v any) error {
	f, ok := toFloat64(v)
	if !ok {
		return errors.TypeMismatch(errors.PhaseAccess, nil, v, "f64")
	}
	binary.LittleEndian.PutUint64(b, math.Float64bits(f))
	return nil
}

// bytesCodec is a raw byte span of fixed length. Unpack returns the live
// window, not a copy: writes through the returned slice mutate the
// backing buffer.
type bytesCodec struct {
	n int
}

// Bytes returns a raw-span codec of n bytes.
func Bytes(n int) Codec {
	return bytesCodec{n: n}
}

func (c bytesCodec) Size() int { return c.n }

func (c bytesCodec) String() string {
	return "bytes[" + strconv.Itoa(c.n) + "]"
}

func (c bytesCodec) Unpack(b []byte) (any, error) {
	return b[:c.n], nil
}

func (c bytesCodec) Pack(b []byte, v any) error {
	var src []byte
	switch data := v.(type) {
	case []byte:
		src = data
	case string:
		src = []byte(data)
	default:
		return errors.TypeMismatch(errors.PhaseAccess, nil, v, c.String())
	}
	if len(src) != c.n {
		return errors.SizeMismatch(nil, len(src), c.n)
	}
	copy(b, src)
	return nil
}

// packError picks the right error kind for a failed numeric coercion: a
// numeric value that would not fit is an overflow, anything else is a
// type mismatch.
func packError(v any, codecName string) error {
	if isNumeric(v) {
		return errors.Overflow(errors.PhaseAccess, nil, v, codecName)
	}
	return errors.TypeMismatch(errors.PhaseAccess, nil, v, codecName)
}

func getUint(b []byte, size int, order binary.ByteOrder) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	default:
		return order.Uint64(b)
	}
}

func putUint(b []byte, size int, order binary.ByteOrder, u uint64) {
	switch size {
	case 1:
		b[0] = byte(u)
	case 2:
		order.PutUint16(b, uint16(u))
	case 4:
		order.PutUint32(b, uint32(u))
	default:
		order.PutUint64(b, u)
	}
}
