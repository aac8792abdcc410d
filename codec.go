// Package fcbuffer is a schema-driven binary serialization engine.
//
// Given a declarative schema of type definitions — primitives, vectors,
// optionals, fixed-width byte arrays and strings, maps, structs with
// inheritance, and user-defined custom types — it builds a graph of Codecs
// that convert between an in-memory internal representation, a canonical
// byte stream, and a human-friendly plain value (the shape used for JSON
// interchange).
//
// # Basic usage
//
//	reg, errs := fcbuffer.Compile(schema, fcbuffer.Config{})
//	if len(errs) > 0 {
//	    // handle schema errors
//	}
//	person := reg.MustGet("Person")
//	data, err := fcbuffer.ToBuffer(person, map[string]any{"name": "Dan"})
//	value, err := fcbuffer.FromBuffer(person, data)
//
// # Overrides
//
// A caller can replace any of the four pipeline stages for a whole type or
// for a single struct field via Config.Override, without touching how
// sibling fields are composed. See Stage, FieldContext and
// FieldOverrideFunc.
//
// # Custom types
//
// Config.CustomTypes lets a schema reference a name that isn't a built-in
// primitive; the factory is called at most once during compilation and the
// resulting Codec is registered under that name exactly like a primitive.
package fcbuffer

import "github.com/zoobzio/fcbuffer/wire"

// ToObjectConfig controls ToObject's behavior.
type ToObjectConfig struct {
	// Defaults, when true and the internal value is absent, asks the
	// Codec to produce a representative default specimen instead of an
	// error. Used for introspection/docs; never affects the wire format.
	Defaults bool
}

// Codec is the universal abstraction: every built-in, struct, or custom
// type in a compiled schema implements it.
//
// A Codec instance is immutable after construction and safe to share
// across concurrent callers. A single Writer or Reader passed to
// AppendBytes/FromBytes must not itself be shared across concurrent
// operations.
type Codec interface {
	// Required reports whether fromObject rejects nil/absent input.
	// Optional-wrapped codecs report false.
	Required() bool

	// FromObject canonicalizes a user-supplied plain value into the
	// codec's internal representation. Returns ErrRequired if value is
	// nil and the codec is required.
	FromObject(value any) (any, error)

	// ToObject converts an internal value back into a plain value for
	// caller consumption. When internal is nil and cfg.Defaults is true,
	// it returns a representative default instead of an error.
	ToObject(internal any, cfg ToObjectConfig) (any, error)

	// AppendBytes writes the canonical byte encoding of internal to w.
	AppendBytes(w *wire.Writer, internal any) error

	// FromBytes reads an internal value from r. r advances by exactly the
	// number of bytes consumed.
	FromBytes(r *wire.Reader) (any, error)
}

// Named is implemented by codecs that know their own schema type name,
// used for error messages and debug reports.
type Named interface {
	TypeName() string
}
