package fcbuffer

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling. Use errors.Is() to
// check for these.
var (
	// ErrRequired indicates a required value was nil or absent.
	ErrRequired = errors.New("required")

	// ErrOverflow indicates a numeric value fell outside a codec's range.
	ErrOverflow = errors.New("overflow")

	// ErrFormat indicates a value was syntactically invalid for its codec.
	ErrFormat = errors.New("format")

	// ErrLengthMismatch indicates a fixed-width codec received the wrong
	// length of input.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIllegalOffset indicates fromBytes ran past the end of the buffer.
	ErrIllegalOffset = errors.New("illegal offset")

	// ErrNotASerializer indicates a value passed to a composing factory
	// (vector, optional, set, map) was not a Codec.
	ErrNotASerializer = errors.New("not a serializer")

	// ErrDuplicateElement indicates a duplicate element was passed to a
	// set's fromObject.
	ErrDuplicateElement = errors.New("duplicate element")

	// Schema compile-time sentinels (spec.md §4.3, accumulated rather than thrown).

	// ErrMissingType indicates a schema reference did not resolve to any
	// registered type.
	ErrMissingType = errors.New("missing type")

	// ErrUnrecognizedType indicates a top-level alias target did not
	// resolve to anything known.
	ErrUnrecognizedType = errors.New("unrecognized type")

	// ErrExpectingString indicates a schema position required a string
	// and did not get one.
	ErrExpectingString = errors.New("expecting string")

	// ErrExpectingObject indicates a schema position required an object
	// (mapping) and did not get one.
	ErrExpectingObject = errors.New("expecting object")

	// ErrExpectingFieldsOrBase indicates a struct entry had neither
	// fields nor base.
	ErrExpectingFieldsOrBase = errors.New("expecting fields or base")

	// ErrCycle indicates a cycle was found through base or alias
	// resolution.
	ErrCycle = errors.New("cycle")

	// ErrDuplicateField indicates two fields of the same struct share a
	// name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrDuplicateType indicates a schema entry's name collides with a
	// Config.CustomTypes name.
	ErrDuplicateType = errors.New("duplicate type")

	// ErrFrozen indicates a field was added to a struct after it was
	// first used.
	ErrFrozen = errors.New("struct is frozen")
)

// SchemaError describes a single problem found while compiling a schema.
// The Schema Compiler accumulates these rather than returning early, so
// callers can see every problem in one pass (spec.md §4.5). Got, when
// set, is the actual referenced or offending name (a missing type, an
// unrecognized alias target, the struct a "fields or base" violation
// was found on, ...) — spec.md §8's compile scenarios check for that
// name appearing literally in the rendered message, not just the path.
type SchemaError struct {
	Err  error  // underlying sentinel
	Path string // dotted path, e.g. "Person.base" or "Person.fields.name"
	Got  string // the actual referenced/offending name
}

func (e *SchemaError) Error() string {
	switch e.Err {
	case ErrExpectingFieldsOrBase:
		return fmt.Sprintf("Expecting %s.fields or %s.base", e.Got, e.Got)
	case ErrMissingType:
		if e.Path != "" {
			return fmt.Sprintf("Missing %s in %s", e.Got, e.Path)
		}
		return fmt.Sprintf("Missing %s", e.Got)
	case ErrUnrecognizedType:
		return fmt.Sprintf("Unrecognized type %s", e.Got)
	case ErrExpectingString, ErrExpectingObject:
		return fmt.Sprintf("%s in %s", e.Err.Error(), e.Path)
	}
	if e.Got != "" {
		return fmt.Sprintf("%s %s in %s", e.Err.Error(), e.Got, e.Path)
	}
	return fmt.Sprintf("%s in %s", e.Err.Error(), e.Path)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func newSchemaError(err error, path string) error {
	return &SchemaError{Err: err, Path: path}
}

// newSchemaErrorWithName is newSchemaError plus the actual
// referenced/offending name, used where spec.md's compile-time error
// text names that value directly (a missing type, a struct with
// neither fields nor base, an unrecognized alias target).
func newSchemaErrorWithName(err error, path, got string) error {
	return &SchemaError{Err: err, Path: path, Got: got}
}

// TypeError describes a runtime failure during fromObject, toObject,
// appendBytes, or fromBytes. Unlike SchemaError, it is raised immediately
// and aborts the enclosing operation (spec.md §4.5/§7).
type TypeError struct {
	Err   error  // underlying sentinel (ErrRequired, ErrOverflow, ErrFormat, ...)
	Type  string // codec/type name
	Field string // field path within a struct, if any
	Cause error  // wrapped cause, if any
}

func (e *TypeError) Error() string {
	loc := e.Type
	if e.Field != "" {
		loc = e.Type + "." + e.Field
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Err.Error(), loc, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), loc)
}

func (e *TypeError) Unwrap() error { return e.Err }

func newTypeError(err error, typ, field string) error {
	return &TypeError{Err: err, Type: typ, Field: field}
}

func newTypeErrorWithCause(err error, typ, field string, cause error) error {
	return &TypeError{Err: err, Type: typ, Field: field, Cause: cause}
}
