package fcbuffer

import "github.com/zoobzio/fcbuffer/wire"

// stringCodec implements the length-prefixed UTF-8 `string` primitive.
// Internal and plain representation are both the decoded Go string
// (spec.md §4.1). Empty strings are allowed.
type stringCodec struct{}

func (stringCodec) TypeName() string { return "string" }
func (stringCodec) Required() bool   { return true }

func (stringCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, "string", "")
	}
	s, ok := value.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, "string", "")
	}
	return s, nil
}

func (stringCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, "string", "")
		}
		return "", nil
	}
	s, ok := internal.(string)
	if !ok {
		return nil, newTypeError(ErrFormat, "string", "")
	}
	return s, nil
}

func (stringCodec) AppendBytes(w *wire.Writer, internal any) error {
	s, ok := internal.(string)
	if !ok {
		return newTypeError(ErrFormat, "string", "")
	}
	w.WriteLengthPrefixed([]byte(s))
	return nil
}

func (stringCodec) FromBytes(r *wire.Reader) (any, error) {
	b, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, "string", "", err)
	}
	return string(b), nil
}
