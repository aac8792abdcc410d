package xtypes

import (
	"bytes"
	"testing"

	"github.com/zoobzio/fcbuffer"
	"github.com/zoobzio/fcbuffer/wire"
)

func TestEnvelopeEncryptedRoundTrip(t *testing.T) {
	masterKey := bytes.Repeat([]byte{0x42}, 32)
	codec, err := NewEnvelopeEncryptedString(masterKey)
	if err != nil {
		t.Fatalf("NewEnvelopeEncryptedString: %v", err)
	}

	internal, err := codec.FromObject("the codes nobody must see")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}

	w := wire.NewWriter()
	if err := codec.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}

	decoded, err := codec.FromBytes(wire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	plain, err := codec.ToObject(decoded, fcbuffer.ToObjectConfig{})
	if err != nil {
		t.Fatalf("ToObject: %v", err)
	}
	if plain != "the codes nobody must see" {
		t.Fatalf("got %v", plain)
	}
}

func TestEnvelopeEncryptedRejectsWrongKeySize(t *testing.T) {
	if _, err := NewEnvelopeEncryptedString([]byte("too short")); err == nil {
		t.Fatal("expected an error for an invalid master key size")
	}
}

func TestEnvelopeEncryptedRejectsTamperedCiphertext(t *testing.T) {
	masterKey := bytes.Repeat([]byte{0x7a}, 32)
	codec, err := NewEnvelopeEncryptedString(masterKey)
	if err != nil {
		t.Fatalf("NewEnvelopeEncryptedString: %v", err)
	}

	internal, err := codec.FromObject("secret")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	ciphertext := internal.([]byte)
	tampered := append([]byte(nil), ciphertext...)
	tampered[len(tampered)-1] ^= 0xff

	if _, err := codec.ToObject(tampered, fcbuffer.ToObjectConfig{}); err == nil {
		t.Fatal("expected decryption to fail on tampered ciphertext")
	}
}
