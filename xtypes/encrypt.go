package xtypes

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/zoobzio/fcbuffer"
	"github.com/zoobzio/fcbuffer/wire"
)

// Encryption errors.
var (
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Encryptor handles encryption/decryption operations for the
// envelope-encrypted custom type.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// aesEncryptor implements AES-GCM encryption.
type aesEncryptor struct {
	gcm cipher.AEAD
}

// AES returns an AES-GCM encryptor. key must be 16, 24, or 32 bytes for
// AES-128, AES-192, or AES-256.
func AES(key []byte) (Encryptor, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &aesEncryptor{gcm: gcm}, nil
}

func (e *aesEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aesEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := e.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrCiphertextShort
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// envelopeEncryptor implements envelope encryption: a random data key is
// generated per operation, encrypted with the master key, and prepended
// to the ciphertext.
type envelopeEncryptor struct {
	masterGCM   cipher.AEAD
	dataKeySize int
}

// Envelope returns an envelope encryptor using a master key. masterKey
// must be 16, 24, or 32 bytes.
func Envelope(masterKey []byte) (Encryptor, error) {
	if len(masterKey) != 16 && len(masterKey) != 24 && len(masterKey) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(masterKey))
	}

	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &envelopeEncryptor{masterGCM: gcm, dataKeySize: 32}, nil
}

func (e *envelopeEncryptor) Encrypt(plaintext []byte) ([]byte, error) {
	dataKey := make([]byte, e.dataKeySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, err
	}

	dataBlock, err := aes.NewCipher(dataKey)
	if err != nil {
		return nil, err
	}
	dataGCM, err := cipher.NewGCM(dataBlock)
	if err != nil {
		return nil, err
	}
	dataNonce := make([]byte, dataGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, dataNonce); err != nil {
		return nil, err
	}
	encryptedData := dataGCM.Seal(dataNonce, dataNonce, plaintext, nil)

	masterNonce := make([]byte, e.masterGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, masterNonce); err != nil {
		return nil, err
	}
	encryptedKey := e.masterGCM.Seal(masterNonce, masterNonce, dataKey, nil)

	if len(encryptedKey) > 65535 {
		return nil, errors.New("encrypted key exceeds maximum length")
	}
	keyLen := uint16(len(encryptedKey))
	result := make([]byte, 2+len(encryptedKey)+len(encryptedData))
	result[0] = byte(keyLen >> 8)
	result[1] = byte(keyLen)
	copy(result[2:], encryptedKey)
	copy(result[2+len(encryptedKey):], encryptedData)
	return result, nil
}

func (e *envelopeEncryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}
	keyLen := int(uint16(ciphertext[0])<<8 | uint16(ciphertext[1]))
	if len(ciphertext) < 2+keyLen {
		return nil, ErrCiphertextShort
	}
	encryptedKey := ciphertext[2 : 2+keyLen]
	encryptedData := ciphertext[2+keyLen:]

	masterNonceSize := e.masterGCM.NonceSize()
	if len(encryptedKey) < masterNonceSize {
		return nil, ErrCiphertextShort
	}
	masterNonce := encryptedKey[:masterNonceSize]
	encryptedKey = encryptedKey[masterNonceSize:]

	dataKey, err := e.masterGCM.Open(nil, masterNonce, encryptedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt data key: %w", ErrDecryptionFailed, err)
	}

	dataBlock, err := aes.NewCipher(dataKey)
	if err != nil {
		return nil, err
	}
	dataGCM, err := cipher.NewGCM(dataBlock)
	if err != nil {
		return nil, err
	}
	dataNonceSize := dataGCM.NonceSize()
	if len(encryptedData) < dataNonceSize {
		return nil, ErrCiphertextShort
	}
	dataNonce := encryptedData[:dataNonceSize]
	encryptedData = encryptedData[dataNonceSize:]

	plaintext, err := dataGCM.Open(nil, dataNonce, encryptedData, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt data: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// envelopeCodec implements "envelope_encrypted": fromObject encrypts a
// plaintext string under a per-value data key itself wrapped by a
// caller-supplied master key; toObject decrypts back to plaintext.
// Internal and wire representation is the raw ciphertext envelope.
type envelopeCodec struct {
	enc Encryptor
}

// NewEnvelopeEncryptedString is a fcbuffer.CustomTypeFactory. opts must
// be the master key, a []byte of length 16, 24, or 32.
func NewEnvelopeEncryptedString(opts any) (fcbuffer.Codec, error) {
	key, ok := opts.([]byte)
	if !ok {
		return nil, fmt.Errorf("envelope_encrypted: %w: opts must be a master key []byte", fcbuffer.ErrFormat)
	}
	enc, err := Envelope(key)
	if err != nil {
		return nil, err
	}
	return envelopeCodec{enc: enc}, nil
}

func (envelopeCodec) TypeName() string { return "envelope_encrypted" }
func (envelopeCodec) Required() bool   { return true }

func (c envelopeCodec) FromObject(value any) (any, error) {
	plaintext, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("envelope_encrypted: %w", fcbuffer.ErrFormat)
	}
	ciphertext, err := c.enc.Encrypt([]byte(plaintext))
	if err != nil {
		return nil, err
	}
	return ciphertext, nil
}

func (c envelopeCodec) ToObject(internal any, _ fcbuffer.ToObjectConfig) (any, error) {
	b, ok := internal.([]byte)
	if !ok {
		return nil, fmt.Errorf("envelope_encrypted: %w", fcbuffer.ErrFormat)
	}
	plaintext, err := c.enc.Decrypt(b)
	if err != nil {
		return nil, err
	}
	return string(plaintext), nil
}

func (envelopeCodec) AppendBytes(w *wire.Writer, internal any) error {
	b, ok := internal.([]byte)
	if !ok {
		return fmt.Errorf("envelope_encrypted: %w", fcbuffer.ErrFormat)
	}
	w.WriteLengthPrefixed(b)
	return nil
}

func (envelopeCodec) FromBytes(r *wire.Reader) (any, error) {
	return r.ReadLengthPrefixed()
}
