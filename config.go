package fcbuffer

import "github.com/zoobzio/fcbuffer/wire"

// Config configures both the Type Factory and the Schema Compiler
// (spec.md §4.1/§6).
type Config struct {
	// Defaults enables ToObject's no-argument default-specimen mode.
	// Never affects the wire format.
	Defaults bool

	// Debug emits extra information during compile (a DebugReport,
	// see debug.go) and does not affect the wire format.
	Debug bool

	// Override replaces or intercepts pipeline stages; see Stage,
	// FieldContext and FieldOverrideFunc in override.go.
	Override map[string]any

	// CustomTypes maps a schema type name to a factory producing a
	// Codec. Names here shadow built-in primitives.
	CustomTypes map[string]CustomTypeFactory
}

// CustomTypeFactory builds a Codec for a user-defined type. The compiler
// calls it at most once, the first time a schema references its name,
// and always passes opts as nil.
type CustomTypeFactory func(opts any) (Codec, error)

// FromObjectFunc replaces a type's or field's fromObject stage.
type FromObjectFunc func(value any) (any, error)

// ToObjectFunc replaces a type's or field's toObject stage.
type ToObjectFunc func(internal any, cfg ToObjectConfig) (any, error)

// AppendBytesFunc replaces a type's or field's appendBytes stage.
type AppendBytesFunc func(w *wire.Writer, internal any) error

// FromBytesFunc replaces a type's or field's fromBytes stage.
type FromBytesFunc func(r *wire.Reader) (any, error)
