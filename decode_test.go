package fcbuffer

import "testing"

type decodeTestPerson struct {
	Name string
	Age  int
}

func TestDecodeIntoStruct(t *testing.T) {
	plain := map[string]any{"name": "Ada", "age": 30}
	var p decodeTestPerson
	if err := Decode(plain, &p); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "Ada" || p.Age != 30 {
		t.Fatalf("got %+v", p)
	}
}

func TestEncodeFromStruct(t *testing.T) {
	p := decodeTestPerson{Name: "Ada", Age: 30}
	out, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m := out.(map[string]any)
	if m["name"] != "Ada" && m["Name"] != "Ada" {
		t.Fatalf("got %v", m)
	}
}
