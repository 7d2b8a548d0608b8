// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// keySize is the raw key length. 32 bytes, matching chacha20poly1305.
	keySize = chacha20poly1305.KeySize

	// secretFileMode is the owner-only mode applied to every secret-bearing
	// file (key, password, entry log).
	secretFileMode = 0o600
)

// KeyStore owns the single active symmetric key of a store instance:
// generation, persistence and validation. The key is persisted as URL-safe
// base64 of 32 raw bytes, one secret per file, hardened to owner-only
// permissions where the platform supports them.
//
// The key is loaded once per process and held for the process lifetime.
// There is no hot-reload: the recovery protocol swaps the key file on disk
// and requires a restart.
type KeyStore struct {
	path string
	log  *logger.Logger
}

// NewKeyStore constructs a KeyStore over the resolved key file path.
func NewKeyStore(path string, log *logger.Logger) *KeyStore {
	return &KeyStore{path: path, log: log}
}

// Path returns the key file location the store operates on.
func (k *KeyStore) Path() string {
	return k.path
}

// EnsureKey loads the key at the store's path, generating and persisting a
// fresh one if no key file exists yet. Fails with an error matching
// [ErrKeyUnavailable] only when generation itself cannot write the file.
func (k *KeyStore) EnsureKey() ([]byte, error) {
	if _, err := os.Stat(k.path); errors.Is(err, os.ErrNotExist) {
		key, genErr := k.GenerateKey()
		if genErr != nil {
			return nil, genErr
		}
		k.log.Info().Str("path", k.path).Msg("generated new encryption key")
		return key, nil
	}

	return k.LoadKey()
}

// LoadKey reads and validates the persisted key material.
//
// On any validation failure (unreadable file, undecodable encoding, wrong
// decoded length) LoadKey regenerates a new key in place instead of
// returning an error. This overwrites the old key file: every record sealed
// under the previous key becomes permanently unreadable. The behavior is
// kept for compatibility with the existing on-disk format, where callers
// rely on LoadKey never failing on bad material. It trades correctness for
// recovery, so the regeneration is logged at Error level before it happens.
func (k *KeyStore) LoadKey() ([]byte, error) {
	encoded, err := os.ReadFile(k.path)
	if err == nil {
		var key []byte
		if key, err = decodeKey(encoded); err == nil {
			return key, nil
		}
	}

	k.log.Error().Err(err).Str("path", k.path).
		Msg("key file is missing or invalid; regenerating, data encrypted with the old key will be unreadable")

	return k.GenerateKey()
}

// GenerateKey creates fresh random key material, persists it at the store's
// path with owner-only permissions, and returns the raw bytes. Returns an
// error matching [ErrKeyUnavailable] if the file cannot be written.
func (k *KeyStore) GenerateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: read random: %v", ErrKeyUnavailable, err)
	}

	if dir := filepath.Dir(k.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: create key dir: %v", ErrKeyUnavailable, err)
		}
	}

	encoded := base64.URLEncoding.EncodeToString(key)
	if err := os.WriteFile(k.path, []byte(encoded), secretFileMode); err != nil {
		return nil, fmt.Errorf("%w: write key file: %v", ErrKeyUnavailable, err)
	}
	Harden(k.path, k.log)

	return key, nil
}

// decodeKey validates that the persisted encoding round-trips to exactly
// keySize bytes of key material.
func decodeKey(encoded []byte) ([]byte, error) {
	raw, err := base64.URLEncoding.DecodeString(strings.TrimSpace(string(encoded)))
	if err != nil {
		return nil, fmt.Errorf("decode key material: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("key material is %d bytes, want %d", len(raw), keySize)
	}
	return raw, nil
}

// Harden applies owner-only read/write permissions to a secret-bearing file.
// Best effort: a chmod failure is logged and never fatal. Skipped on Windows,
// where POSIX permission bits are not meaningful.
func Harden(path string, log *logger.Logger) {
	if runtime.GOOS == "windows" {
		return
	}
	if err := os.Chmod(path, secretFileMode); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not set permissions on secret file")
	}
}
