package fcbuffer

import (
	"math"
	"strconv"

	"github.com/zoobzio/fcbuffer/wire"
)

// uintCodec implements an unsigned integer primitive of a fixed bit width
// (8/16/32/64), optionally using LEB128 varint wire encoding instead of a
// fixed width (spec.md §4.1 "Integer primitives").
//
// Internal representation is uint64 regardless of width; fromObject
// enforces the width's range so the internal value is always a valid
// member of [0, 2^bits-1].
type uintCodec struct {
	name   string
	bits   int
	varint bool
}

func (c *uintCodec) TypeName() string { return c.name }
func (c *uintCodec) Required() bool   { return true }

func (c *uintCodec) max() uint64 {
	if c.bits >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << c.bits) - 1
}

func (c *uintCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.name, "")
	}

	if c.bits == 64 {
		s, ok := asDecimalString(value)
		if !ok {
			return nil, newTypeError(ErrFormat, c.name, "")
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, newTypeErrorWithCause(ErrOverflowOrFormat(err), c.name, "", err)
		}
		return n, nil
	}

	f, neg, ok := asNumber(value)
	if !ok {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if neg {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if f != math.Trunc(f) {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if f > float64(c.max()) {
		return nil, newTypeError(ErrOverflow, c.name, "")
	}
	return uint64(f), nil
}

func (c *uintCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.name, "")
		}
		internal = uint64(0)
	}
	n, ok := internal.(uint64)
	if !ok {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if c.bits == 64 {
		return strconv.FormatUint(n, 10), nil
	}
	return int64(n), nil
}

func (c *uintCodec) AppendBytes(w *wire.Writer, internal any) error {
	n, ok := internal.(uint64)
	if !ok {
		return newTypeError(ErrFormat, c.name, "")
	}
	if c.varint {
		w.WriteUvarint(n)
		return nil
	}
	switch c.bits {
	case 8:
		w.WriteUint8(uint8(n))
	case 16:
		w.WriteUint16(uint16(n))
	case 32:
		w.WriteUint32(uint32(n))
	case 64:
		w.WriteUint64(n)
	}
	return nil
}

func (c *uintCodec) FromBytes(r *wire.Reader) (any, error) {
	if c.varint {
		n, err := r.ReadUvarint()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return n, nil
	}
	switch c.bits {
	case 8:
		v, err := r.ReadUint8()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return uint64(v), nil
	case 16:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return uint64(v), nil
	case 32:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return uint64(v), nil
	default:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return v, nil
	}
}

// intCodec implements a signed integer primitive of a fixed bit width,
// optionally using zig-zag LEB128 varint wire encoding.
//
// Internal representation is int64 regardless of width.
type intCodec struct {
	name   string
	bits   int
	varint bool
}

func (c *intCodec) TypeName() string { return c.name }
func (c *intCodec) Required() bool   { return true }

func (c *intCodec) bounds() (min, max int64) {
	if c.bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	max = (int64(1) << (c.bits - 1)) - 1
	min = -(int64(1) << (c.bits - 1))
	return min, max
}

func (c *intCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.name, "")
	}

	if c.bits == 64 {
		s, ok := asDecimalString(value)
		if !ok {
			return nil, newTypeError(ErrFormat, c.name, "")
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, newTypeErrorWithCause(ErrOverflowOrFormat(err), c.name, "", err)
		}
		return n, nil
	}

	f, neg, ok := asNumber(value)
	if !ok {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if neg {
		f = -f
	}
	if f != math.Trunc(f) {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	min, max := c.bounds()
	if f < float64(min) || f > float64(max) {
		return nil, newTypeError(ErrOverflow, c.name, "")
	}
	return int64(f), nil
}

func (c *intCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.name, "")
		}
		internal = int64(0)
	}
	n, ok := internal.(int64)
	if !ok {
		return nil, newTypeError(ErrFormat, c.name, "")
	}
	if c.bits == 64 {
		return strconv.FormatInt(n, 10), nil
	}
	return n, nil
}

func (c *intCodec) AppendBytes(w *wire.Writer, internal any) error {
	n, ok := internal.(int64)
	if !ok {
		return newTypeError(ErrFormat, c.name, "")
	}
	if c.varint {
		w.WriteVarint(n)
		return nil
	}
	switch c.bits {
	case 8:
		w.WriteInt8(int8(n))
	case 16:
		w.WriteInt16(int16(n))
	case 32:
		w.WriteInt32(int32(n))
	case 64:
		w.WriteInt64(n)
	}
	return nil
}

func (c *intCodec) FromBytes(r *wire.Reader) (any, error) {
	if c.varint {
		n, err := r.ReadVarint()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return n, nil
	}
	switch c.bits {
	case 8:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return int64(v), nil
	case 16:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return int64(v), nil
	case 32:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return int64(v), nil
	default:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, newTypeErrorWithCause(ErrIllegalOffset, c.name, "", err)
		}
		return v, nil
	}
}

// ErrOverflowOrFormat classifies a strconv parse error of a 64-bit decimal
// string as ErrOverflow (out of range) or ErrFormat (not a number at all),
// matching spec.md §8 scenario 3/4 ("18446744073709551616" -> Overflow,
// vs. a non-numeric string -> format).
func ErrOverflowOrFormat(err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return ErrOverflow
	}
	return ErrFormat
}

// asNumber normalizes an accepted numeric plain value (any Go integer or
// float type, or a numeric string) into its absolute value and sign.
func asNumber(value any) (magnitude float64, negative bool, ok bool) {
	switch v := value.(type) {
	case int:
		return math.Abs(float64(v)), v < 0, true
	case int8:
		return math.Abs(float64(v)), v < 0, true
	case int16:
		return math.Abs(float64(v)), v < 0, true
	case int32:
		return math.Abs(float64(v)), v < 0, true
	case int64:
		return math.Abs(float64(v)), v < 0, true
	case uint:
		return float64(v), false, true
	case uint8:
		return float64(v), false, true
	case uint16:
		return float64(v), false, true
	case uint32:
		return float64(v), false, true
	case uint64:
		return float64(v), false, true
	case float32:
		f := float64(v)
		return math.Abs(f), f < 0, true
	case float64:
		return math.Abs(v), v < 0, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false, false
		}
		return math.Abs(f), f < 0, true
	default:
		return 0, false, false
	}
}

// asDecimalString normalizes a value accepted by a 64-bit integer codec
// into the decimal string strconv expects; non-string numeric values are
// also accepted for convenience.
func asDecimalString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	default:
		return "", false
	}
}
