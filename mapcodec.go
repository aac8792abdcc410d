package fcbuffer

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/fcbuffer/wire"
)

// mapEntry is the internal representation of one key/value pair.
type mapEntry struct {
	Key   any
	Value any
}

// mapCodec implements `map([keyCodec, valueCodec])`: a varuint32-prefixed
// sequence of (key, value) pairs (spec.md §4.1/§6). Internal
// representation is []mapEntry, preserving insertion order on the wire.
type mapCodec struct {
	key   Codec
	value Codec
}

// NewMap wraps a key and value Codec as an associative sequence.
func NewMap(key, value Codec) (Codec, error) {
	if key == nil || value == nil {
		return nil, fmt.Errorf("%w: map parameters should be serializers", ErrNotASerializer)
	}
	return &mapCodec{key: key, value: value}, nil
}

func (c *mapCodec) TypeName() string { return "map" }
func (c *mapCodec) Required() bool   { return true }

func (c *mapCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.TypeName(), "")
	}

	pairs, ok := toPairs(value)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}

	entries := make([]mapEntry, len(pairs))
	for i, p := range pairs {
		k, err := c.key.FromObject(p[0])
		if err != nil {
			return nil, err
		}
		v, err := c.value.FromObject(p[1])
		if err != nil {
			return nil, err
		}
		entries[i] = mapEntry{Key: k, Value: v}
	}
	return entries, nil
}

func (c *mapCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.TypeName(), "")
		}
		return []any{}, nil
	}
	entries, ok := internal.([]mapEntry)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	out := make([]any, len(entries))
	for i, e := range entries {
		k, err := c.key.ToObject(e.Key, cfg)
		if err != nil {
			return nil, err
		}
		v, err := c.value.ToObject(e.Value, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = []any{k, v}
	}
	return out, nil
}

func (c *mapCodec) AppendBytes(w *wire.Writer, internal any) error {
	entries, ok := internal.([]mapEntry)
	if !ok {
		return newTypeError(ErrFormat, c.TypeName(), "")
	}
	w.WriteUvarint(uint64(len(entries)))
	for _, e := range entries {
		if err := c.key.AppendBytes(w, e.Key); err != nil {
			return err
		}
		if err := c.value.AppendBytes(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func (c *mapCodec) FromBytes(r *wire.Reader) (any, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, c.TypeName(), "", err)
	}
	entries := make([]mapEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		k, err := c.key.FromBytes(r)
		if err != nil {
			return nil, err
		}
		v, err := c.value.FromBytes(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapEntry{Key: k, Value: v})
	}
	return entries, nil
}

// toPairs normalizes a map-shaped plain value — a sequence of two-element
// sequences, or a Go map — into a flat list of [key, value] pairs.
func toPairs(value any) ([][2]any, bool) {
	if m, ok := value.(map[string]any); ok {
		out := make([][2]any, 0, len(m))
		for k, v := range m {
			out = append(out, [2]any{k, v})
		}
		return out, true
	}

	items, ok := toAnySlice(value)
	if !ok {
		return nil, false
	}
	out := make([][2]any, len(items))
	for i, item := range items {
		pair, ok := toAnySlice(item)
		if !ok || len(pair) != 2 {
			rv := reflect.ValueOf(item)
			if rv.Kind() == reflect.Array && rv.Len() == 2 {
				out[i] = [2]any{rv.Index(0).Interface(), rv.Index(1).Interface()}
				continue
			}
			return nil, false
		}
		out[i] = [2]any{pair[0], pair[1]}
	}
	return out, true
}
