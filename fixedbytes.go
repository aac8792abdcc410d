package fcbuffer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/fcbuffer/wire"
)

// fixedBytesCodec implements `fixed_bytesN`: exactly N bytes on the wire,
// no length prefix. Plain representation is a hex string of length 2N
// (spec.md §4.1).
type fixedBytesCodec struct {
	n int
}

// parseFixedBytesName reports whether name has the form "fixed_bytesN"
// and, if so, returns N.
func parseFixedBytesName(name string) (int, bool) {
	const prefix = "fixed_bytes"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func newFixedBytesCodec(n int) Codec { return &fixedBytesCodec{n: n} }

func (c *fixedBytesCodec) TypeName() string { return fmt.Sprintf("fixed_bytes%d", c.n) }
func (c *fixedBytesCodec) Required() bool   { return true }

func (c *fixedBytesCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.TypeName(), "")
	}
	s, ok := value.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, newTypeErrorWithCause(ErrFormat, c.TypeName(), "", err)
	}
	if len(b) != c.n {
		return nil, newTypeErrorWithCause(ErrLengthMismatch, c.TypeName(), "",
			fmt.Errorf("%s length %d does not equal %d", c.TypeName(), len(b), c.n))
	}
	return b, nil
}

func (c *fixedBytesCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.TypeName(), "")
		}
		return strings.Repeat("00", c.n), nil
	}
	b, ok := internal.([]byte)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	return hex.EncodeToString(b), nil
}

func (c *fixedBytesCodec) AppendBytes(w *wire.Writer, internal any) error {
	b, ok := internal.([]byte)
	if !ok || len(b) != c.n {
		return newTypeError(ErrLengthMismatch, c.TypeName(), "")
	}
	w.WriteRaw(b)
	return nil
}

func (c *fixedBytesCodec) FromBytes(r *wire.Reader) (any, error) {
	b, err := r.ReadRaw(c.n)
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, c.TypeName(), "", err)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}
