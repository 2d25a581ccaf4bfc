package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	sealerKeySize = 32
	sealerKeyInfo = "yurikamome:credential-sealer:v1"
)

// Sealer encrypts credential blobs (serialized Twitter cookie jars) at
// rest with AES-256-GCM. The key is derived from a deployment secret
// via HKDF-SHA256; the owning session ID is bound in as AAD so a blob
// lifted from one row cannot be opened under another.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from the deployment secret.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("sealer secret must not be empty")
	}

	key := make([]byte, sealerKeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(sealerKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("deriving sealer key: %w", err)
	}

	return &Sealer{key: key}, nil
}

// Seal encrypts plaintext bound to sessionID. The nonce is prepended
// to the ciphertext.
func (s *Sealer) Seal(plaintext []byte, sessionID string) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, []byte(sessionID)), nil
}

// Open decrypts a sealed blob bound to sessionID.
func (s *Sealer) Open(sealed []byte, sessionID string) ([]byte, error) {
	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("sealed blob shorter than nonce size")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(sessionID))
	if err != nil {
		return nil, fmt.Errorf("opening sealed blob: %w", err)
	}

	return plaintext, nil
}

func (s *Sealer) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}
