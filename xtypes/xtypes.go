// Package xtypes provides custom fcbuffer types for password hashing,
// wired through Config.CustomTypes rather than the built-in primitive
// catalog.
package xtypes

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/zoobzio/fcbuffer"
	"github.com/zoobzio/fcbuffer/wire"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

// argon2Codec implements "argon2_password_hash": fromObject hashes a
// plaintext password with a freshly generated salt; the internal and
// wire representation is salt||hash.
type argon2Codec struct{}

// NewArgon2PasswordHash is a fcbuffer.CustomTypeFactory. opts is unused.
func NewArgon2PasswordHash(_ any) (fcbuffer.Codec, error) {
	return argon2Codec{}, nil
}

func (argon2Codec) TypeName() string { return "argon2_password_hash" }
func (argon2Codec) Required() bool   { return true }

func (argon2Codec) FromObject(value any) (any, error) {
	password, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("argon2_password_hash: %w", fcbuffer.ErrFormat)
	}
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	return append(salt, hash...), nil
}

func (argon2Codec) ToObject(internal any, _ fcbuffer.ToObjectConfig) (any, error) {
	b, ok := internal.([]byte)
	if !ok {
		return nil, fmt.Errorf("argon2_password_hash: %w", fcbuffer.ErrFormat)
	}
	return hex.EncodeToString(b), nil
}

func (argon2Codec) AppendBytes(w *wire.Writer, internal any) error {
	b, ok := internal.([]byte)
	if !ok {
		return fmt.Errorf("argon2_password_hash: %w", fcbuffer.ErrFormat)
	}
	w.WriteLengthPrefixed(b)
	return nil
}

func (argon2Codec) FromBytes(r *wire.Reader) (any, error) {
	return r.ReadLengthPrefixed()
}

// VerifyArgon2 reports whether password matches hashed, a salt||hash
// value as produced by argon2Codec.FromObject.
func VerifyArgon2(password string, hashed []byte) bool {
	if len(hashed) <= argon2SaltLen {
		return false
	}
	salt, hash := hashed[:argon2SaltLen], hashed[argon2SaltLen:]
	candidate := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// bcryptCodec implements "bcrypt_password_hash": fromObject hashes a
// plaintext password at a fixed cost factor. Internal and wire
// representation is the raw bcrypt hash, which already encodes its own
// salt and cost.
type bcryptCodec struct {
	cost int
}

// NewBcryptPasswordHash is a fcbuffer.CustomTypeFactory. opts, if an
// int, sets the bcrypt cost factor; otherwise bcrypt.DefaultCost is
// used.
func NewBcryptPasswordHash(opts any) (fcbuffer.Codec, error) {
	cost := bcrypt.DefaultCost
	if c, ok := opts.(int); ok {
		cost = c
	}
	return bcryptCodec{cost: cost}, nil
}

func (bcryptCodec) TypeName() string { return "bcrypt_password_hash" }
func (bcryptCodec) Required() bool   { return true }

func (c bcryptCodec) FromObject(value any) (any, error) {
	password, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("bcrypt_password_hash: %w", fcbuffer.ErrFormat)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return nil, err
	}
	return hash, nil
}

func (bcryptCodec) ToObject(internal any, _ fcbuffer.ToObjectConfig) (any, error) {
	b, ok := internal.([]byte)
	if !ok {
		return nil, fmt.Errorf("bcrypt_password_hash: %w", fcbuffer.ErrFormat)
	}
	return string(b), nil
}

func (bcryptCodec) AppendBytes(w *wire.Writer, internal any) error {
	b, ok := internal.([]byte)
	if !ok {
		return fmt.Errorf("bcrypt_password_hash: %w", fcbuffer.ErrFormat)
	}
	w.WriteLengthPrefixed(b)
	return nil
}

func (bcryptCodec) FromBytes(r *wire.Reader) (any, error) {
	return r.ReadLengthPrefixed()
}

// VerifyBcrypt reports whether password matches hashed, as produced by
// bcryptCodec.FromObject.
func VerifyBcrypt(password string, hashed []byte) bool {
	return bcrypt.CompareHashAndPassword(hashed, []byte(password)) == nil
}
