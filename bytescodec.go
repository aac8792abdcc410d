package fcbuffer

import (
	"encoding/hex"

	"github.com/zoobzio/fcbuffer/wire"
)

// bytesCodec implements the length-prefixed `bytes` primitive. Internal
// representation is []byte; plain representation is a hex string
// (spec.md §4.1).
type bytesCodec struct{}

func (bytesCodec) TypeName() string { return "bytes" }
func (bytesCodec) Required() bool   { return true }

func (bytesCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, "bytes", "")
	}
	s, ok := value.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, "bytes", "")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newTypeErrorWithCause(ErrFormat, "bytes", "", err)
	}
	return b, nil
}

func (bytesCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, "bytes", "")
		}
		return "", nil
	}
	b, ok := internal.([]byte)
	if !ok {
		return nil, newTypeError(ErrFormat, "bytes", "")
	}
	return hex.EncodeToString(b), nil
}

func (bytesCodec) AppendBytes(w *wire.Writer, internal any) error {
	b, ok := internal.([]byte)
	if !ok {
		return newTypeError(ErrFormat, "bytes", "")
	}
	w.WriteLengthPrefixed(b)
	return nil
}

func (bytesCodec) FromBytes(r *wire.Reader) (any, error) {
	b, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, "bytes", "", err)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
