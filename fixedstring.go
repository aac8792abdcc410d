package fcbuffer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/fcbuffer/wire"
)

// fixedStringCodec implements `fixed_stringN`: up to N UTF-8 bytes on the
// wire, zero-padded to N (spec.md §4.1/§6).
type fixedStringCodec struct {
	n int
}

// parseFixedStringName reports whether name has the form "fixed_stringN"
// and, if so, returns N.
func parseFixedStringName(name string) (int, bool) {
	const prefix = "fixed_string"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func newFixedStringCodec(n int) Codec { return &fixedStringCodec{n: n} }

func (c *fixedStringCodec) TypeName() string { return fmt.Sprintf("fixed_string%d", c.n) }
func (c *fixedStringCodec) Required() bool   { return true }

func (c *fixedStringCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.TypeName(), "")
	}
	s, ok := value.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	if len(s) > c.n {
		return nil, newTypeErrorWithCause(ErrLengthMismatch, c.TypeName(), "",
			fmt.Errorf("%s exceeds maxLen %d", c.TypeName(), c.n))
	}
	return s, nil
}

func (c *fixedStringCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.TypeName(), "")
		}
		return "", nil
	}
	s, ok := internal.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	return s, nil
}

func (c *fixedStringCodec) AppendBytes(w *wire.Writer, internal any) error {
	s, ok := internal.(string)
	if !ok || len(s) > c.n {
		return newTypeError(ErrLengthMismatch, c.TypeName(), "")
	}
	padded := make([]byte, c.n)
	copy(padded, s)
	w.WriteRaw(padded)
	return nil
}

func (c *fixedStringCodec) FromBytes(r *wire.Reader) (any, error) {
	b, err := r.ReadRaw(c.n)
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, c.TypeName(), "", err)
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}
