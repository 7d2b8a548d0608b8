// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher performs authenticated encryption of opaque text payloads under the
// store's active key using ChaCha20-Poly1305. A token is the URL-safe base64
// encoding of nonce ‖ ciphertext, so it is self-contained and safe to store
// one-per-line in the entry log.
//
// Both operations are pure with respect to the receiver: Cipher holds the
// AEAD for the key it was built with and nothing else.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher over raw 32-byte key material, normally obtained
// from [KeyStore.EnsureKey].
func NewCipher(key []byte) (*Cipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext into a single-line token. A fresh random nonce is
// generated per call and prepended to the ciphertext so that Decrypt can
// split it out of the token.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(blob), nil
}

// Decrypt opens a token produced by [Cipher.Encrypt] and returns the
// plaintext. Every failure (undecodable base64, a blob shorter than the
// nonce, an authentication-tag mismatch from tampering or a wrong key) is
// reported as an error matching [ErrDecryptionFailed]; garbage plaintext is
// never returned.
func (c *Cipher) Decrypt(token string) (string, error) {
	blob, err := base64.URLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", fmt.Errorf("%w: decode token: %v", ErrDecryptionFailed, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: token too short", ErrDecryptionFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}
