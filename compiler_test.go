package fcbuffer

import (
	"errors"
	"testing"
)

func TestCompileStructWithVectorField(t *testing.T) {
	schema := Schema{
		"Person": StructDef{
			Fields: []FieldDef{
				{Name: "name", Type: "string"},
				{Name: "age", Type: "uint8"},
				{Name: "friends", Type: "vector[Person]"},
			},
		},
	}
	reg, errs := Compile(schema, Config{})
	if len(errs) > 0 {
		t.Fatalf("Compile: %v", errs)
	}
	person, ok := reg.Get("Person")
	if !ok {
		t.Fatal("expected Person in registry")
	}

	value, err := ToBuffer(person, map[string]any{
		"name": "Dan",
		"age":  int64(40),
		"friends": []any{
			map[string]any{"name": "Ada", "age": int64(30), "friends": []any{}},
		},
	})
	if err != nil {
		t.Fatalf("ToBuffer: %v", err)
	}

	decoded, err := FromBuffer(person, value)
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}
	m := decoded.(map[string]any)
	if m["name"] != "Dan" {
		t.Fatalf("got %v", m)
	}
}

func TestCompileStructInheritance(t *testing.T) {
	schema := Schema{
		"Animal": StructDef{
			Fields: []FieldDef{{Name: "species", Type: "string"}},
		},
		"Pet": StructDef{
			Base:   "Animal",
			Fields: []FieldDef{{Name: "name", Type: "string"}},
		},
	}
	reg, errs := Compile(schema, Config{})
	if len(errs) > 0 {
		t.Fatalf("Compile: %v", errs)
	}
	pet, ok := reg.Get("Pet")
	if !ok {
		t.Fatal("expected Pet in registry")
	}
	data, err := ToBuffer(pet, map[string]any{"species": "dog", "name": "Rex"})
	if err != nil {
		t.Fatalf("ToBuffer: %v", err)
	}
	decoded, err := FromBuffer(pet, data)
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}
	m := decoded.(map[string]any)
	if m["species"] != "dog" || m["name"] != "Rex" {
		t.Fatalf("got %v", m)
	}
}

func TestCompileMissingBaseIsAccumulatedError(t *testing.T) {
	schema := Schema{
		"Pet": StructDef{
			Base:   "DoesNotExist",
			Fields: []FieldDef{{Name: "name", Type: "string"}},
		},
	}
	_, errs := Compile(schema, Config{})
	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
	found := false
	for _, err := range errs {
		if errors.Is(err, ErrMissingType) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrMissingType among %v", errs)
	}
}

func TestCompileBaseCycleIsDetected(t *testing.T) {
	schema := Schema{
		"A": StructDef{Base: "B"},
		"B": StructDef{Base: "A"},
	}
	_, errs := Compile(schema, Config{})
	if len(errs) == 0 {
		t.Fatal("expected cycle error")
	}
	found := false
	for _, err := range errs {
		if errors.Is(err, ErrCycle) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrCycle among %v", errs)
	}
}

func TestCompileAliasCycleIsDetected(t *testing.T) {
	schema := Schema{
		"A": "B",
		"B": "A",
	}
	_, errs := Compile(schema, Config{})
	if len(errs) == 0 {
		t.Fatal("expected cycle error")
	}
}

func TestCompileUnknownFieldTypeAccumulates(t *testing.T) {
	schema := Schema{
		"Thing": StructDef{
			Fields: []FieldDef{{Name: "x", Type: "nope"}},
		},
	}
	_, errs := Compile(schema, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
}

func TestCompileCollectsMultipleErrorsInOnePass(t *testing.T) {
	schema := Schema{
		"A": StructDef{Fields: []FieldDef{{Name: "x", Type: "nope"}}},
		"B": StructDef{Fields: []FieldDef{{Name: "y", Type: "alsonope"}}},
	}
	_, errs := Compile(schema, Config{})
	if len(errs) != 2 {
		t.Fatalf("expected two accumulated errors, got %v", errs)
	}
}

func TestCompileAliasToVector(t *testing.T) {
	schema := Schema{
		"IDList": "vector[uint64]",
	}
	reg, errs := Compile(schema, Config{})
	if len(errs) > 0 {
		t.Fatalf("Compile: %v", errs)
	}
	idList, ok := reg.Get("IDList")
	if !ok {
		t.Fatal("expected IDList in registry")
	}
	data, err := ToBuffer(idList, []any{"1", "2", "3"})
	if err != nil {
		t.Fatalf("ToBuffer: %v", err)
	}
	decoded, err := FromBuffer(idList, data)
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}
	items := decoded.([]any)
	if len(items) != 3 || items[0] != "1" {
		t.Fatalf("got %v", items)
	}
}

func TestCompileNamedMapType(t *testing.T) {
	schema := Schema{
		"Tags": MapDef{Key: "string", Value: "uint8"},
	}
	reg, errs := Compile(schema, Config{})
	if len(errs) > 0 {
		t.Fatalf("Compile: %v", errs)
	}
	tags, ok := reg.Get("Tags")
	if !ok {
		t.Fatal("expected Tags in registry")
	}
	data, err := ToBuffer(tags, []any{[]any{"a", int64(1)}})
	if err != nil {
		t.Fatalf("ToBuffer: %v", err)
	}
	if _, err := FromBuffer(tags, data); err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}
}

func TestCompileStructWithOnlyFieldsSucceeds(t *testing.T) {
	schema := Schema{
		"Struct": StructDef{
			Fields: []FieldDef{{Name: "checksum", Type: "fixed_bytes32"}},
		},
	}
	if _, errs := Compile(schema, Config{}); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCompileStructWithNeitherFieldsNorBaseMessage(t *testing.T) {
	schema := Schema{"Struct": StructDef{}}
	_, errs := Compile(schema, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !errors.Is(errs[0], ErrExpectingFieldsOrBase) {
		t.Fatalf("expected ErrExpectingFieldsOrBase, got %v", errs[0])
	}
	if got := errs[0].Error(); got != "Expecting Struct.fields or Struct.base" {
		t.Fatalf("got message %q", got)
	}
}

func TestCompileMissingBaseMessageNamesTheBase(t *testing.T) {
	schema := Schema{
		"Person": StructDef{
			Base:   "Human",
			Fields: []FieldDef{{Name: "name", Type: "string"}},
		},
	}
	_, errs := Compile(schema, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if got := errs[0].Error(); got != "Missing Human in Person.base" {
		t.Fatalf("got message %q", got)
	}
}

func TestCompileUnrecognizedTopLevelAliasMessage(t *testing.T) {
	schema := Schema{"Foo": "Bogus"}
	_, errs := Compile(schema, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !errors.Is(errs[0], ErrUnrecognizedType) {
		t.Fatalf("expected ErrUnrecognizedType, got %v", errs[0])
	}
	if got := errs[0].Error(); got != "Unrecognized type Bogus" {
		t.Fatalf("got message %q", got)
	}
}

func TestCompileDuplicateTypeAgainstCustomTypes(t *testing.T) {
	schema := Schema{
		"Password": StructDef{Fields: []FieldDef{{Name: "hash", Type: "string"}}},
	}
	config := Config{
		CustomTypes: map[string]CustomTypeFactory{
			"Password": func(args any) (Codec, error) { return &stringCodec{}, nil },
		},
	}
	_, errs := Compile(schema, config)
	found := false
	for _, err := range errs {
		if errors.Is(err, ErrDuplicateType) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrDuplicateType among %v", errs)
	}
}

func TestMustCompilePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustCompile(Schema{"A": StructDef{Fields: []FieldDef{{Name: "x", Type: "nope"}}}}, Config{})
}
