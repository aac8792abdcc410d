package xtypes

import (
	"testing"

	"github.com/zoobzio/fcbuffer/wire"
)

func TestArgon2RoundTrip(t *testing.T) {
	codec, err := NewArgon2PasswordHash(nil)
	if err != nil {
		t.Fatalf("NewArgon2PasswordHash: %v", err)
	}
	internal, err := codec.FromObject("correct horse battery staple")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}

	w := wire.NewWriter()
	if err := codec.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}
	r := wire.NewReader(w.Bytes())
	decoded, err := codec.FromBytes(r)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	hashed := decoded.([]byte)
	if !VerifyArgon2("correct horse battery staple", hashed) {
		t.Fatal("VerifyArgon2 rejected the correct password")
	}
	if VerifyArgon2("wrong password", hashed) {
		t.Fatal("VerifyArgon2 accepted the wrong password")
	}
}

func TestBcryptRoundTrip(t *testing.T) {
	codec, err := NewBcryptPasswordHash(4) // low cost for test speed
	if err != nil {
		t.Fatalf("NewBcryptPasswordHash: %v", err)
	}
	internal, err := codec.FromObject("correct horse battery staple")
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}

	w := wire.NewWriter()
	if err := codec.AppendBytes(w, internal); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}
	r := wire.NewReader(w.Bytes())
	decoded, err := codec.FromBytes(r)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	hashed := decoded.([]byte)
	if !VerifyBcrypt("correct horse battery staple", hashed) {
		t.Fatal("VerifyBcrypt rejected the correct password")
	}
	if VerifyBcrypt("wrong password", hashed) {
		t.Fatal("VerifyBcrypt accepted the wrong password")
	}
}
