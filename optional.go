package fcbuffer

import (
	"fmt"

	"github.com/zoobzio/fcbuffer/wire"
)

// optionalCodec implements `optional(inner)`: one flag byte, then the
// inner encoding iff the flag is 1 (spec.md §4.1/§6).
type optionalCodec struct {
	inner Codec
}

// NewOptional wraps inner so absent/nil values are accepted. Returns an
// error if inner is not a Codec.
func NewOptional(inner Codec) (Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: optional parameter should be a serializer", ErrNotASerializer)
	}
	return &optionalCodec{inner: inner}, nil
}

func (c *optionalCodec) TypeName() string {
	if n, ok := c.inner.(Named); ok {
		return n.TypeName() + "?"
	}
	return "optional"
}

func (c *optionalCodec) Required() bool { return false }

func (c *optionalCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	return c.inner.FromObject(value)
}

func (c *optionalCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		return nil, nil
	}
	return c.inner.ToObject(internal, cfg)
}

func (c *optionalCodec) AppendBytes(w *wire.Writer, internal any) error {
	if internal == nil {
		w.WriteUint8(0)
		return nil
	}
	w.WriteUint8(1)
	return c.inner.AppendBytes(w, internal)
}

func (c *optionalCodec) FromBytes(r *wire.Reader) (any, error) {
	flag, err := r.ReadUint8()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, c.TypeName(), "", err)
	}
	if flag == 0 {
		return nil, nil
	}
	return c.inner.FromBytes(r)
}
