package fcbuffer

import (
	"strings"
	"time"

	"github.com/zoobzio/fcbuffer/wire"
)

// timeLayout is ISO-8601 without a timezone offset, the canonical toObject
// form (spec.md §4.1).
const timeLayout = "2006-01-02T15:04:05"

// timeCodec implements `time`: 32-bit unsigned seconds since the Unix
// epoch on the wire. Internal representation is uint32.
type timeCodec struct{}

func (timeCodec) TypeName() string { return "time" }
func (timeCodec) Required() bool   { return true }

func (timeCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, "time", "")
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v.UTC()
	case string:
		parsed, err := time.ParseInLocation(timeLayout, strings.TrimSuffix(v, "Z"), time.UTC)
		if err != nil {
			return nil, newTypeErrorWithCause(ErrFormat, "time", "", err)
		}
		t = parsed
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		ms, ok := asInt64(v)
		if !ok {
			return nil, newTypeError(ErrFormat, "time", "")
		}
		t = time.Unix(0, ms*int64(time.Millisecond)).UTC()
	default:
		return nil, newTypeError(ErrFormat, "time", "")
	}

	secs := t.Unix()
	if secs < 0 {
		return nil, newTypeError(ErrFormat, "time", "")
	}
	if secs > 0xFFFFFFFF {
		return nil, newTypeError(ErrOverflow, "time", "")
	}
	return uint32(secs), nil
}

func (timeCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, "time", "")
		}
		internal = uint32(0)
	}
	secs, ok := internal.(uint32)
	if !ok {
		return nil, newTypeError(ErrFormat, "time", "")
	}
	return time.Unix(int64(secs), 0).UTC().Format(timeLayout), nil
}

func (timeCodec) AppendBytes(w *wire.Writer, internal any) error {
	secs, ok := internal.(uint32)
	if !ok {
		return newTypeError(ErrFormat, "time", "")
	}
	w.WriteUint32(secs)
	return nil
}

func (timeCodec) FromBytes(r *wire.Reader) (any, error) {
	secs, err := r.ReadUint32()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, "time", "", err)
	}
	return secs, nil
}

// asInt64 converts any accepted Go numeric type to int64, truncating
// floats toward zero. Used for the milliseconds-since-epoch form of time.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
