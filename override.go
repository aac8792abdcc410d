package fcbuffer

import (
	"fmt"
	"strings"

	"github.com/zoobzio/fcbuffer/wire"
)

// Stage names one of the four pipeline operations an override can replace
// (spec.md §4.4). The external string spellings ("fromByteBuffer",
// "appendByteBuffer") are the ones a caller writes in a Config.Override
// key; internally they map to the same AppendBytes/FromBytes stage as the
// Codec interface's own method names.
type Stage int

const (
	StageFromObject Stage = iota
	StageToObject
	StageAppendBytes
	StageFromBytes
)

func parseStage(s string) (Stage, bool) {
	switch s {
	case "fromObject":
		return StageFromObject, true
	case "toObject":
		return StageToObject, true
	case "appendByteBuffer":
		return StageAppendBytes, true
	case "fromByteBuffer":
		return StageFromBytes, true
	default:
		return 0, false
	}
}

// overrideKey identifies either a type-level override ("<type>.<op>") or a
// field-level override ("<struct>.<field>.<op>") parsed from a Config.Override
// dotted key. The Design Notes of spec.md §9 recommend a typed,
// structured key over raw strings; that is what the compiler builds from
// the string-keyed Config.Override map before constructing codecs.
type overrideKey struct {
	typeName string
	field    string // empty for type-level overrides
	stage    Stage
}

func parseOverrideKey(key string) (overrideKey, error) {
	parts := strings.Split(key, ".")
	switch len(parts) {
	case 2:
		stage, ok := parseStage(parts[1])
		if !ok {
			return overrideKey{}, fmt.Errorf("unknown override stage %q in %q", parts[1], key)
		}
		return overrideKey{typeName: parts[0], stage: stage}, nil
	case 3:
		stage, ok := parseStage(parts[2])
		if !ok {
			return overrideKey{}, fmt.Errorf("unknown override stage %q in %q", parts[2], key)
		}
		return overrideKey{typeName: parts[0], field: parts[1], stage: stage}, nil
	default:
		return overrideKey{}, fmt.Errorf("malformed override key %q: expected \"type.op\" or \"struct.field.op\"", key)
	}
}

// overrideSet splits a compiler's Config.Override map into type-level and
// field-level buckets, keyed for fast lookup while building codecs.
type overrideSet struct {
	types  map[string]map[Stage]any            // typeName -> stage -> func
	fields map[string]map[string]map[Stage]any // structName -> fieldName -> stage -> func
}

func buildOverrideSet(raw map[string]any) (*overrideSet, error) {
	set := &overrideSet{
		types:  make(map[string]map[Stage]any),
		fields: make(map[string]map[string]map[Stage]any),
	}
	for key, fn := range raw {
		ok, err := parseOverrideKey(key)
		if err != nil {
			return nil, err
		}
		if ok.field == "" {
			m, exists := set.types[ok.typeName]
			if !exists {
				m = make(map[Stage]any)
				set.types[ok.typeName] = m
			}
			m[ok.stage] = fn
			continue
		}
		byField, exists := set.fields[ok.typeName]
		if !exists {
			byField = make(map[string]map[Stage]any)
			set.fields[ok.typeName] = byField
		}
		m, exists := byField[ok.field]
		if !exists {
			m = make(map[Stage]any)
			byField[ok.field] = m
		}
		m[ok.stage] = fn
	}
	return set, nil
}

func (s *overrideSet) typeOverrides(typeName string) map[Stage]any {
	if s == nil {
		return nil
	}
	return s.types[typeName]
}

// overriddenCodec wraps a base Codec, substituting any stage present in
// stages while delegating the rest, so overriding one operation never
// disturbs the composition of the others (spec.md §4.4).
type overriddenCodec struct {
	base     Codec
	typeName string
	stages   map[Stage]any
}

func wrapTypeOverride(base Codec, typeName string, stages map[Stage]any) Codec {
	if len(stages) == 0 {
		return base
	}
	return &overriddenCodec{base: base, typeName: typeName, stages: stages}
}

func (c *overriddenCodec) Required() bool { return c.base.Required() }

func (c *overriddenCodec) FromObject(value any) (any, error) {
	if fn, ok := c.stages[StageFromObject]; ok {
		f, ok := fn.(FromObjectFunc)
		if !ok {
			return nil, fmt.Errorf("override %s.fromObject has the wrong function type", c.typeName)
		}
		return f(value)
	}
	return c.base.FromObject(value)
}

func (c *overriddenCodec) ToObject(internal any, cfg ToObjectConfig) (any, error) {
	if fn, ok := c.stages[StageToObject]; ok {
		f, ok := fn.(ToObjectFunc)
		if !ok {
			return nil, fmt.Errorf("override %s.toObject has the wrong function type", c.typeName)
		}
		return f(internal, cfg)
	}
	return c.base.ToObject(internal, cfg)
}

func (c *overriddenCodec) AppendBytes(w *wire.Writer, internal any) error {
	if fn, ok := c.stages[StageAppendBytes]; ok {
		f, ok := fn.(AppendBytesFunc)
		if !ok {
			return fmt.Errorf("override %s.appendByteBuffer has the wrong function type", c.typeName)
		}
		return f(w, internal)
	}
	return c.base.AppendBytes(w, internal)
}

func (c *overriddenCodec) FromBytes(r *wire.Reader) (any, error) {
	if fn, ok := c.stages[StageFromBytes]; ok {
		f, ok := fn.(FromBytesFunc)
		if !ok {
			return nil, fmt.Errorf("override %s.fromByteBuffer has the wrong function type", c.typeName)
		}
		return f(r)
	}
	return c.base.FromBytes(r)
}

func (c *overriddenCodec) TypeName() string { return c.typeName }

// FieldContext is passed to a field-level override (spec.md §4.4). The
// override is responsible for the field's full behavior at that stage: it
// reads/writes Result, Object, W, or R itself instead of the struct doing
// its default per-field action.
type FieldContext struct {
	// Fields is the map of sibling field codecs of the enclosing struct,
	// keyed by field name.
	Fields map[string]Codec

	// Object is the current input object (fromObject) or the struct
	// value being read back (toObject).
	Object any

	// Result is the struct's accumulating output: the map being built by
	// fromObject/toObject.
	Result map[string]any

	// W is the write cursor, present for appendByteBuffer overrides.
	W *wire.Writer

	// R is the read cursor, present for fromByteBuffer overrides.
	R *wire.Reader

	// Config is the active ToObjectConfig.
	Config ToObjectConfig
}

// FieldOverrideFunc is the signature every field-level override function
// must satisfy, regardless of which stage it replaces; the stage
// determines which of ctx.W/ctx.R/ctx.Result/ctx.Object are meaningful.
type FieldOverrideFunc func(ctx *FieldContext) error
