// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth owns the store's single authentication secret: initial setup,
// verification and reset. The password itself is persisted only as an
// encrypted token, sealed by the same cipher that protects the entry log.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
)

// maxSetupAttempts bounds how many mismatched confirmations RunSetup accepts
// before giving up with ErrSetupAbandoned.
const maxSetupAttempts = 3

// CredentialsPrompt collects a candidate password and its confirmation from
// the user. Supplied by the presentation layer; the gate never blocks on
// interactive input itself. A non-nil error means the user cancelled.
type CredentialsPrompt func() (password, confirm string, err error)

// Gate is the password gate over the encrypted password file. It moves
// through three states: Unset (no file), Set (file decrypts) and Corrupted
// (file exists but does not decrypt, detected lazily on use).
type Gate struct {
	path   string
	cipher crypto.Encryptor
	log    *logger.Logger
}

// NewGate constructs a Gate over the resolved password file path.
func NewGate(path string, cipher crypto.Encryptor, log *logger.Logger) *Gate {
	return &Gate{path: path, cipher: cipher, log: log}
}

// IsSet reports whether a password file exists. It does not check that the
// file decrypts; corruption is detected lazily by Authenticate.
func (g *Gate) IsSet() bool {
	_, err := os.Stat(g.path)
	return err == nil
}

// SetInitialPassword validates a candidate against its confirmation and
// persists it. Returns ErrEmptyPassword or ErrPasswordMismatch on invalid
// input without touching the stored state.
func (g *Gate) SetInitialPassword(candidate, confirm string) error {
	if strings.TrimSpace(candidate) == "" {
		return ErrEmptyPassword
	}
	if candidate != confirm {
		return ErrPasswordMismatch
	}
	return g.savePassword(candidate)
}

// RunSetup drives the initial-setup flow through prompt, re-prompting on
// mismatched or empty input up to maxSetupAttempts times. A prompt error
// (user cancelled) or an exhausted attempt budget fails with an error
// matching ErrSetupAbandoned; any persistence failure is returned as-is.
func (g *Gate) RunSetup(prompt CredentialsPrompt) error {
	for attempt := 1; attempt <= maxSetupAttempts; attempt++ {
		candidate, confirm, err := prompt()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSetupAbandoned, err)
		}

		err = g.SetInitialPassword(candidate, confirm)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrPasswordMismatch) && !errors.Is(err, ErrEmptyPassword) {
			return err
		}
		g.log.Warn().Int("attempt", attempt).Msg("password confirmation rejected")
	}

	return ErrSetupAbandoned
}

// ResetPassword replaces the stored password wholesale, with the same
// confirmation rule as SetInitialPassword. The gate performs no
// re-authentication: the surrounding UI is responsible for placing reset
// behind a screen only an authenticated user can reach.
func (g *Gate) ResetPassword(candidate, confirm string) error {
	return g.SetInitialPassword(candidate, confirm)
}

// Authenticate compares input against the decrypted stored password. It
// never mutates state. An undecryptable password file is reported as an
// error matching ErrPasswordCorrupted so the caller can offer a reset.
func (g *Gate) Authenticate(input string) (bool, error) {
	stored, err := g.loadPassword()
	if err != nil {
		return false, err
	}
	return input == stored, nil
}

// loadPassword reads and decrypts the stored password token.
func (g *Gate) loadPassword() (string, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return "", fmt.Errorf("read password file: %w", err)
	}

	password, err := g.cipher.Decrypt(strings.TrimSpace(string(data)))
	if err != nil {
		if errors.Is(err, crypto.ErrDecryptionFailed) {
			return "", fmt.Errorf("%w: %v", ErrPasswordCorrupted, err)
		}
		return "", err
	}

	return password, nil
}

// savePassword encrypts and persists the password with the same on-disk
// permission hardening as the key file.
func (g *Gate) savePassword(password string) error {
	token, err := g.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}

	if dir := filepath.Dir(g.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create password dir: %w", err)
		}
	}

	if err := os.WriteFile(g.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write password file: %w", err)
	}
	crypto.Harden(g.path, g.log)

	return nil
}
