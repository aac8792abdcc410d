package xml

import "testing"

type person struct {
	Name string `xml:"name"`
}

func TestRoundTrip(t *testing.T) {
	c := Codec{}
	data, err := c.Marshal(person{Name: "ada"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out person
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Name != "ada" {
		t.Fatalf("got %+v", out)
	}
}
