package fcbuffer

import (
	"errors"
	"testing"

	"github.com/zoobzio/fcbuffer/wire"
)

func TestStructFieldOrderAndRoundTrip(t *testing.T) {
	s := NewStruct("Person", nil)
	if err := s.Add("name", &stringCodec{}); err != nil {
		t.Fatalf("Add name: %v", err)
	}
	if err := s.Add("age", &uintCodec{name: "uint8", bits: 8}); err != nil {
		t.Fatalf("Add age: %v", err)
	}

	internal, err := s.FromObject(map[string]any{"name": "Dan", "age": int64(40)})
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}

	w := wire.NewWriter()
	if err := s.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}
	decoded, err := s.FromBytes(wire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	plain, err := s.ToObject(decoded, ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	m := plain.(map[string]any)
	if m["name"] != "Dan" || m["age"] != int64(40) {
		t.Fatalf("got %v", m)
	}
}

func TestStructBaseFieldsPrecedeOwn(t *testing.T) {
	base := NewStruct("Animal", nil)
	if err := base.Add("species", &stringCodec{}); err != nil {
		t.Fatalf("Add species: %v", err)
	}
	derived := NewStruct("Pet", base)
	if err := derived.Add("name", &stringCodec{}); err != nil {
		t.Fatalf("Add name: %v", err)
	}

	fields := derived.allFields()
	if len(fields) != 2 || fields[0].name != "species" || fields[1].name != "name" {
		t.Fatalf("got %v", fields)
	}
}

func TestStructFrozenAfterFirstUse(t *testing.T) {
	s := NewStruct("Thing", nil)
	if err := s.Add("a", &stringCodec{}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.FromObject(map[string]any{"a": "x"}); err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	if err := s.Add("b", &stringCodec{}); err == nil {
		t.Fatal("expected ErrFrozen after first use")
	}
}

// TestStructMissingRequiredFieldNamesTheStruct checks the error raised
// for an absent required field names the enclosing struct, not the
// field's own codec (e.g. "required Person.name", not "required
// string.name"), matching the literal shape spec.md uses for this
// message.
func TestStructMissingRequiredFieldNamesTheStruct(t *testing.T) {
	s := NewStruct("Person", nil)
	if err := s.Add("name", &stringCodec{}); err != nil {
		t.Fatalf("Add name: %v", err)
	}

	_, err := s.FromObject(map[string]any{})
	if !errors.Is(err, ErrRequired) {
		t.Fatalf("expected ErrRequired, got %v", err)
	}
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TypeError, got %T", err)
	}
	if te.Type != "Person" || te.Field != "name" {
		t.Fatalf("expected Type=Person Field=name, got Type=%s Field=%s", te.Type, te.Field)
	}
}

func TestStructDuplicateFieldRejected(t *testing.T) {
	s := NewStruct("Thing", nil)
	if err := s.Add("a", &stringCodec{}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add("a", &stringCodec{}); err == nil {
		t.Fatal("expected duplicate field error")
	}
}

func TestStructFieldOverrideReplacesDefaultHandling(t *testing.T) {
	s := NewStruct("Message", nil)
	if err := s.Add("kind", &stringCodec{}); err != nil {
		t.Fatalf("Add kind: %v", err)
	}
	if err := s.Add("data", &bytesCodec{}); err != nil {
		t.Fatalf("Add data: %v", err)
	}
	err := s.SetFieldOverride("data", StageFromObject, func(ctx *FieldContext) error {
		ctx.Result["data"] = []byte("overridden")
		return nil
	})
	if err != nil {
		t.Fatalf("SetFieldOverride: %v", err)
	}

	internal, err := s.FromObject(map[string]any{"kind": "ping", "data": "aabb"})
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	m := internal.(map[string]any)
	if string(m["data"].([]byte)) != "overridden" {
		t.Fatalf("got %v", m["data"])
	}
}

// TestFieldOverrideDispatchesOnSiblingTypeRoundTrip builds a Message struct
// whose "data" field is a nested Transfer struct chosen by the sibling
// "type" field, exercising FieldContext.Object for sibling dispatch
// rather than a single hardcoded replacement (spec.md §4.4, §8).
func TestFieldOverrideDispatchesOnSiblingTypeRoundTrip(t *testing.T) {
	transfer := NewStruct("Transfer", nil)
	if err := transfer.Add("from", &stringCodec{}); err != nil {
		t.Fatalf("Add from: %v", err)
	}
	if err := transfer.Add("to", &stringCodec{}); err != nil {
		t.Fatalf("Add to: %v", err)
	}

	message := NewStruct("Message", nil)
	if err := message.Add("type", &stringCodec{}); err != nil {
		t.Fatalf("Add type: %v", err)
	}
	if err := message.Add("data", &bytesCodec{}); err != nil {
		t.Fatalf("Add data: %v", err)
	}

	encodeData := func(ctx *FieldContext) error {
		obj, ok := toStringMap(ctx.Object)
		if !ok {
			return newTypeError(ErrExpectingObject, "Message", "data")
		}
		switch obj["type"] {
		case "transfer":
			internal, err := transfer.FromObject(obj["data"])
			if err != nil {
				return err
			}
			w := wire.NewWriter()
			if err := transfer.AppendBytes(w, internal); err != nil {
				return err
			}
			ctx.Result["data"] = append([]byte(nil), w.Bytes()...)
			return nil
		default:
			return newTypeError(ErrFormat, "Message", "type")
		}
	}
	decodeData := func(ctx *FieldContext) error {
		obj, ok := toStringMap(ctx.Object)
		if !ok {
			return newTypeError(ErrExpectingObject, "Message", "data")
		}
		switch obj["type"] {
		case "transfer":
			b, ok := obj["data"].([]byte)
			if !ok {
				return newTypeError(ErrFormat, "Message", "data")
			}
			decoded, err := transfer.FromBytes(wire.NewReader(b))
			if err != nil {
				return err
			}
			plain, err := transfer.ToObject(decoded, ctx.Config)
			if err != nil {
				return err
			}
			ctx.Result["data"] = plain
			return nil
		default:
			return newTypeError(ErrFormat, "Message", "type")
		}
	}

	if err := message.SetFieldOverride("data", StageFromObject, encodeData); err != nil {
		t.Fatalf("SetFieldOverride fromObject: %v", err)
	}
	if err := message.SetFieldOverride("data", StageToObject, decodeData); err != nil {
		t.Fatalf("SetFieldOverride toObject: %v", err)
	}

	internal, err := message.FromObject(map[string]any{
		"type": "transfer",
		"data": map[string]any{"from": "slim", "to": "luke"},
	})
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}

	w := wire.NewWriter()
	if err := message.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}

	decoded, err := message.FromBytes(wire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	plain, err := message.ToObject(decoded, ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	m2 := plain.(map[string]any)
	if m2["type"] != "transfer" {
		t.Fatalf("got type %v", m2["type"])
	}
	data := m2["data"].(map[string]any)
	if data["from"] != "slim" || data["to"] != "luke" {
		t.Fatalf("got data %v", data)
	}
}
