package fcbuffer

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zoobzio/fcbuffer/wire"
)

// structField is one named, ordered member of a Struct.
type structField struct {
	name  string
	codec Codec
}

// Struct is the Struct Builder (spec.md §4.2): an ordered, named-field
// aggregate with optional single-base inheritance. Base fields always
// precede the struct's own fields, both in fromObject/toObject output
// and on the wire.
//
// A Struct is built with Add before it is ever used for fromObject,
// toObject, appendBytes, or fromBytes; the first such call freezes it,
// and any later Add returns ErrFrozen.
type Struct struct {
	name   string
	base   *Struct
	fields []structField
	frozen bool

	// fieldOverrides holds field-level overrides attached by the
	// compiler from Config.Override's "<struct>.<field>.<op>" keys
	// (spec.md §4.4). Keyed by field name, then stage.
	fieldOverrides map[string]map[Stage]FieldOverrideFunc
}

// NewStruct creates an empty Struct. base may be nil.
func NewStruct(name string, base *Struct) *Struct {
	return &Struct{name: name, base: base}
}

// Add appends a field to the struct, in declaration order. It returns
// ErrFrozen if the struct has already been used, and ErrDuplicateField
// if name collides with a field of the same name already on this struct
// or its base chain.
func (s *Struct) Add(name string, codec Codec) error {
	if s.frozen {
		return fmt.Errorf("%w: cannot add field %q to %s", ErrFrozen, name, s.name)
	}
	if codec == nil {
		return fmt.Errorf("%w: field %q should be a serializer", ErrNotASerializer, name)
	}
	if _, exists := s.Field(name); exists {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateField, s.name, name)
	}
	s.fields = append(s.fields, structField{name: name, codec: codec})
	return nil
}

// SetFieldOverride attaches a field-level override for one pipeline
// stage. It returns ErrFrozen once the struct has been used.
func (s *Struct) SetFieldOverride(field string, stage Stage, fn FieldOverrideFunc) error {
	if s.frozen {
		return fmt.Errorf("%w: cannot override %s.%s after use", ErrFrozen, s.name, field)
	}
	if s.fieldOverrides == nil {
		s.fieldOverrides = make(map[string]map[Stage]FieldOverrideFunc)
	}
	m, ok := s.fieldOverrides[field]
	if !ok {
		m = make(map[Stage]FieldOverrideFunc)
		s.fieldOverrides[field] = m
	}
	m[stage] = fn
	return nil
}

// Field looks up a field codec by name, searching this struct's own
// fields first and then its base chain.
func (s *Struct) Field(name string) (Codec, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f.codec, true
		}
	}
	if s.base != nil {
		return s.base.Field(name)
	}
	return nil, false
}

// allFields returns every field in wire order: the base's fields,
// recursively, followed by this struct's own.
func (s *Struct) allFields() []structField {
	if s.base == nil {
		return s.fields
	}
	return append(append([]structField{}, s.base.allFields()...), s.fields...)
}

func (s *Struct) fieldOverride(field string, stage Stage) (FieldOverrideFunc, bool) {
	if s.fieldOverrides == nil {
		return nil, false
	}
	m, ok := s.fieldOverrides[field]
	if !ok {
		return nil, false
	}
	fn, ok := m[stage]
	return fn, ok
}

func (s *Struct) freeze() { s.frozen = true }

// setBase wires the struct's base after both have been created as
// skeletons, letting the compiler resolve base references regardless of
// schema declaration order.
func (s *Struct) setBase(base *Struct) { s.base = base }

func (s *Struct) fieldCodecMap(fields []structField) map[string]Codec {
	m := make(map[string]Codec, len(fields))
	for _, f := range fields {
		m[f.name] = f.codec
	}
	return m
}

func (s *Struct) TypeName() string { return s.name }
func (s *Struct) Required() bool   { return true }

func (s *Struct) FromObject(value any) (any, error) {
	s.freeze()
	if value == nil {
		return nil, newTypeError(ErrRequired, s.name, "")
	}
	obj, ok := toStringMap(value)
	if !ok {
		return nil, newTypeError(ErrExpectingObject, s.name, "")
	}

	fields := s.allFields()
	fieldCodecs := s.fieldCodecMap(fields)
	result := make(map[string]any, len(fields))

	for _, f := range fields {
		if ov, ok := s.fieldOverride(f.name, StageFromObject); ok {
			ctx := &FieldContext{Fields: fieldCodecs, Object: obj, Result: result}
			if err := ov(ctx); err != nil {
				return nil, attachField(err, f.name)
			}
			continue
		}
		raw, present := obj[f.name]
		if !present {
			raw = nil
		}
		if raw == nil && f.codec.Required() {
			return nil, newTypeError(ErrRequired, s.name, f.name)
		}
		v, err := f.codec.FromObject(raw)
		if err != nil {
			return nil, attachField(err, f.name)
		}
		result[f.name] = v
	}
	return result, nil
}

func (s *Struct) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	s.freeze()
	if internal == nil {
		if !cfg.Defaults {
			return nil, newTypeError(ErrRequired, s.name, "")
		}
		internal = map[string]any{}
	}
	im, ok := internal.(map[string]any)
	if !ok {
		return nil, newTypeError(ErrFormat, s.name, "")
	}

	fields := s.allFields()
	fieldCodecs := s.fieldCodecMap(fields)
	result := make(map[string]any, len(fields))

	for _, f := range fields {
		if ov, ok := s.fieldOverride(f.name, StageToObject); ok {
			ctx := &FieldContext{Fields: fieldCodecs, Object: im, Result: result, Config: cfg}
			if err := ov(ctx); err != nil {
				return nil, attachField(err, f.name)
			}
			continue
		}
		raw := im[f.name]
		if raw == nil && f.codec.Required() && !cfg.Defaults {
			return nil, newTypeError(ErrRequired, s.name, f.name)
		}
		v, err := f.codec.ToObject(raw, cfg)
		if err != nil {
			return nil, attachField(err, f.name)
		}
		result[f.name] = v
	}
	return result, nil
}

func (s *Struct) AppendBytes(w *wire.Writer, internal any) error {
	s.freeze()
	im, ok := internal.(map[string]any)
	if !ok {
		return newTypeError(ErrFormat, s.name, "")
	}

	fields := s.allFields()
	fieldCodecs := s.fieldCodecMap(fields)

	for _, f := range fields {
		if ov, ok := s.fieldOverride(f.name, StageAppendBytes); ok {
			ctx := &FieldContext{Fields: fieldCodecs, Object: im, W: w}
			if err := ov(ctx); err != nil {
				return attachField(err, f.name)
			}
			continue
		}
		if err := f.codec.AppendBytes(w, im[f.name]); err != nil {
			return attachField(err, f.name)
		}
	}
	return nil
}

func (s *Struct) FromBytes(r *wire.Reader) (any, error) {
	s.freeze()
	fields := s.allFields()
	fieldCodecs := s.fieldCodecMap(fields)
	result := make(map[string]any, len(fields))

	for _, f := range fields {
		if ov, ok := s.fieldOverride(f.name, StageFromBytes); ok {
			ctx := &FieldContext{Fields: fieldCodecs, Result: result, R: r}
			if err := ov(ctx); err != nil {
				return nil, attachField(err, f.name)
			}
			continue
		}
		v, err := f.codec.FromBytes(r)
		if err != nil {
			return nil, attachField(err, f.name)
		}
		result[f.name] = v
	}
	return result, nil
}

// attachField annotates err with field if it is a *TypeError that
// doesn't already carry one. An error that already names a field keeps
// it, so a nested failure reports the innermost struct field that led
// to it.
func attachField(err error, field string) error {
	var te *TypeError
	if errors.As(err, &te) && te.Field == "" {
		te.Field = field
		return te
	}
	return err
}

// toStringMap normalizes a map-shaped plain value into map[string]any.
func toStringMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() != reflect.String {
			return nil, false
		}
		out[key.String()] = iter.Value().Interface()
	}
	return out, true
}
