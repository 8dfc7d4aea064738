package security

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrEncryption     = errors.New("encryption failed")
	ErrDecryption     = errors.New("decryption failed")
)

// KeySize is the length of a sealing key in bytes.
const KeySize = chacha20poly1305.KeySize

// Sealer encrypts small secrets at rest with XChaCha20-Poly1305. The random
// 24-byte nonce is prepended to each ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a sealer from a 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrInvalidKeySize
	}
	return &Sealer{aead: aead}, nil
}

// NewSealerFromBase64 decodes a standard base64 key. An empty key yields a
// sealer with a fresh random key; generated reports whether that happened.
func NewSealerFromBase64(encoded string) (s *Sealer, generated bool, err error) {
	if encoded == "" {
		key, err := GenerateKey()
		if err != nil {
			return nil, false, err
		}
		s, err = NewSealer(key)
		return s, true, err
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("decode seal key: %w", err)
	}
	s, err = NewSealer(key)
	return s, false, err
}

// GenerateKey returns a random sealing key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate seal key: %w", err)
	}
	return key, nil
}

// Seal encrypts data. aad is authenticated but not encrypted, and must be
// passed unchanged to Open.
func (s *Sealer) Seal(data, aad []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(data)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, ErrEncryption
	}
	return s.aead.Seal(nonce, nonce, data, aad), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(data, aad []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrDecryption
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

// SealString seals a string and encodes the result as base64.
func (s *Sealer) SealString(plaintext, aad string) (string, error) {
	sealed, err := s.Seal([]byte(plaintext), []byte(aad))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString.
func (s *Sealer) OpenString(sealed, aad string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrDecryption
	}
	plaintext, err := s.Open(raw, []byte(aad))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
