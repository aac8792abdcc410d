package json

import "testing"

func TestRoundTrip(t *testing.T) {
	c := Codec{}
	data, err := c.Marshal(map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out map[string]any
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["name"] != "ada" {
		t.Fatalf("got %v", out)
	}
}
