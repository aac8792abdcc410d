package fcbuffer

import (
	"context"
	"time"

	"github.com/zoobzio/fcbuffer/wire"
)

// ToBuffer runs a codec's full encode pipeline: fromObject followed by
// appendBytes, returning the canonical byte encoding of value.
func ToBuffer(codec Codec, value any) ([]byte, error) {
	ctx := context.Background()
	typeName := typeNameOf(codec)
	emitToBufferStart(ctx, typeName)
	start := time.Now()

	internal, err := codec.FromObject(value)
	if err != nil {
		emitToBufferComplete(ctx, typeName, 0, time.Since(start), err)
		return nil, err
	}

	w := wire.NewWriter()
	if err := codec.AppendBytes(w, internal); err != nil {
		emitToBufferComplete(ctx, typeName, 0, time.Since(start), err)
		return nil, err
	}

	emitToBufferComplete(ctx, typeName, w.Len(), time.Since(start), nil)
	return w.Bytes(), nil
}

// FromBuffer runs a codec's full decode pipeline: fromBytes followed by
// toObject, returning the plain value encoded in data. It returns
// ErrIllegalOffset if data holds fewer bytes than codec consumes, and
// ErrLengthMismatch if bytes are left over after decoding.
func FromBuffer(codec Codec, data []byte) (any, error) {
	ctx := context.Background()
	typeName := typeNameOf(codec)
	emitFromBufferStart(ctx, typeName, len(data))
	start := time.Now()

	r := wire.NewReader(data)
	internal, err := codec.FromBytes(r)
	if err != nil {
		emitFromBufferComplete(ctx, typeName, time.Since(start), err)
		return nil, err
	}
	if r.Remaining() != 0 {
		err := newTypeError(ErrLengthMismatch, typeName, "")
		emitFromBufferComplete(ctx, typeName, time.Since(start), err)
		return nil, err
	}

	value, err := codec.ToObject(internal, ToObjectConfig{})
	emitFromBufferComplete(ctx, typeName, time.Since(start), err)
	return value, err
}

func typeNameOf(codec Codec) string {
	if n, ok := codec.(Named); ok {
		return n.TypeName()
	}
	return "unknown"
}
