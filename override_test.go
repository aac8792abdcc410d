package fcbuffer

import "testing"

func TestParseOverrideKeyTypeLevel(t *testing.T) {
	k, err := parseOverrideKey("uint8.fromObject")
	if err != nil {
		t.Fatalf("parseOverrideKey: %v", err)
	}
	if k.typeName != "uint8" || k.field != "" || k.stage != StageFromObject {
		t.Fatalf("got %+v", k)
	}
}

func TestParseOverrideKeyFieldLevel(t *testing.T) {
	k, err := parseOverrideKey("Message.data.appendByteBuffer")
	if err != nil {
		t.Fatalf("parseOverrideKey: %v", err)
	}
	if k.typeName != "Message" || k.field != "data" || k.stage != StageAppendBytes {
		t.Fatalf("got %+v", k)
	}
}

func TestParseOverrideKeyRejectsMalformed(t *testing.T) {
	if _, err := parseOverrideKey("justonepart"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := parseOverrideKey("a.b.c.d"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := parseOverrideKey("a.notAStage"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTypeLevelOverrideReplacesStageOnly(t *testing.T) {
	base := &uintCodec{name: "uint8", bits: 8}
	stages := map[Stage]any{
		StageFromObject: FromObjectFunc(func(value any) (any, error) {
			return uint64(42), nil
		}),
	}
	wrapped := wrapTypeOverride(base, "uint8", stages)

	internal, err := wrapped.FromObject("ignored")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	if internal != uint64(42) {
		t.Fatalf("expected override result 42, got %v", internal)
	}

	// ToObject falls through to the base codec untouched.
	plain, err := wrapped.ToObject(uint64(7), ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if plain != int64(7) {
		t.Fatalf("got %v", plain)
	}
}

func TestCompileWithTypeOverride(t *testing.T) {
	schema := Schema{
		"Flag": "uint8",
	}
	config := Config{
		Override: map[string]any{
			"uint8.toObject": ToObjectFunc(func(internal any, cfg ToObjectConfig) (any, error) {
				return "overridden", nil
			}),
		},
	}
	reg, errs := Compile(schema, config)
	if len(errs) > 0 {
		t.Fatalf("Compile: %v", errs)
	}
	flag, ok := reg.Get("Flag")
	if !ok {
		t.Fatal("expected Flag in registry")
	}
	plain, err := flag.ToObject(uint64(1), ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if plain != "overridden" {
		t.Fatalf("got %v", plain)
	}
}
