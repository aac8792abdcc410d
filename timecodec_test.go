package fcbuffer

import (
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/fcbuffer/wire"
)

func TestTimeRoundTrip(t *testing.T) {
	c := timeCodec{}
	in := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	internal, err := c.FromObject(in)
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	w := wire.NewWriter()
	if err := c.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}
	if w.Len() != 4 {
		t.Fatalf("expected 4-byte wire form, got %d", w.Len())
	}
	decoded, err := c.FromBytes(wire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	plain, err := c.ToObject(decoded, ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if plain != "2024-03-15T10:30:00" {
		t.Fatalf("got %v", plain)
	}
}

func TestTimeAcceptsISOStringWithZ(t *testing.T) {
	c := timeCodec{}
	internal, err := c.FromObject("2024-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	if internal.(uint32) == 0 {
		t.Fatalf("expected nonzero seconds")
	}
}

func TestTimeBeforeEpochIsFormatError(t *testing.T) {
	c := timeCodec{}
	before := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.FromObject(before); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
