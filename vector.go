package fcbuffer

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/zoobzio/fcbuffer/wire"
)

// vectorCodec implements `vector(inner, sorted)`/`set(inner)`: a
// varuint32-prefixed homogeneous sequence (spec.md §4.1/§6).
//
// Sorting and duplicate detection both compare elements by their own
// canonical byte encoding, which gives every element type — primitive or
// struct — a well-defined "natural ordering" without per-type comparison
// logic.
type vectorCodec struct {
	inner  Codec
	sorted bool
	isSet  bool
}

// NewVector wraps inner as a homogeneous, ordered sequence. If sorted is
// true, fromObject re-sorts its input and appendBytes always emits
// elements in that sorted order.
func NewVector(inner Codec, sorted bool) (Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: vector type should be a serializer", ErrNotASerializer)
	}
	return &vectorCodec{inner: inner, sorted: sorted}, nil
}

// NewSet wraps inner as a sequence that rejects duplicate elements on
// fromObject.
func NewSet(inner Codec) (Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: set type should be a serializer", ErrNotASerializer)
	}
	return &vectorCodec{inner: inner, isSet: true}, nil
}

func (c *vectorCodec) TypeName() string {
	name := "vector"
	if c.isSet {
		name = "set"
	}
	if n, ok := c.inner.(Named); ok {
		return name + "[" + n.TypeName() + "]"
	}
	return name
}

func (c *vectorCodec) Required() bool { return true }

func (c *vectorCodec) FromObject(value any) (any, error) {
	if value == nil {
		return nil, newTypeError(ErrRequired, c.TypeName(), "")
	}
	items, ok := toAnySlice(value)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}

	internal := make([]any, len(items))
	encoded := make([][]byte, len(items))
	for i, item := range items {
		v, err := c.inner.FromObject(item)
		if err != nil {
			return nil, err
		}
		internal[i] = v
		w := wire.NewWriter()
		if err := c.inner.AppendBytes(w, v); err != nil {
			return nil, err
		}
		encoded[i] = append([]byte(nil), w.Bytes()...)
	}

	if c.isSet {
		seen := make(map[string]bool, len(encoded))
		for _, b := range encoded {
			key := string(b)
			if seen[key] {
				return nil, newTypeError(ErrDuplicateElement, c.TypeName(), "")
			}
			seen[key] = true
		}
	}

	if c.sorted {
		order := make([]int, len(internal))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return bytes.Compare(encoded[order[i]], encoded[order[j]]) < 0
		})
		sortedInternal := make([]any, len(internal))
		for i, idx := range order {
			sortedInternal[i] = internal[idx]
		}
		internal = sortedInternal
	}

	return internal, nil
}

func (c *vectorCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, c.TypeName(), "")
		}
		return []any{}, nil
	}
	items, ok := internal.([]any)
	if !ok {
		return nil, newTypeError(ErrFormat, c.TypeName(), "")
	}
	out := make([]any, len(items))
	for i, item := range items {
		v, err := c.inner.ToObject(item, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *vectorCodec) AppendBytes(w *wire.Writer, internal any) error {
	items, ok := internal.([]any)
	if !ok {
		return newTypeError(ErrFormat, c.TypeName(), "")
	}
	w.WriteUvarint(uint64(len(items)))
	for _, item := range items {
		if err := c.inner.AppendBytes(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *vectorCodec) FromBytes(r *wire.Reader) (any, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, newTypeErrorWithCause(ErrIllegalOffset, c.TypeName(), "", err)
	}
	items := make([]any, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := c.inner.FromBytes(r)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// toAnySlice normalizes any accepted slice-shaped plain value into []any.
func toAnySlice(value any) ([]any, bool) {
	if v, ok := value.([]any); ok {
		return v, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
