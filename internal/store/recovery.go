// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
)

// recoveryCandidateNames are the conventional sibling names probed for an
// alternate key when nothing in the log decrypts. These match the names the
// key file has historically been saved or backed up under.
var recoveryCandidateNames = []string{
	"key.key",
	"key.key.bak",
	"key.key.backup",
	".key.key.bak",
}

const (
	// previousKeySuffix is appended to the active key path when a recovery
	// key replaces it, preserving the superseded key.
	previousKeySuffix = ".previous"

	// backupTimeLayout names timestamped snapshots of the undecryptable log.
	backupTimeLayout = "20060102_150405"
)

// The recovery protocol is a pure decision core: it enumerates candidates,
// applies a caller-chosen one, or snapshots the log. It never blocks on
// interactive input; which branch runs is decided by the presentation layer.
// The protocol never deletes data; it only adds backup copies or swaps the
// key file (backing up the superseded key first).

// ListRecoveryCandidates returns the alternate key files present next to
// the active key file, in a fixed probe order. An empty result means the
// only remaining offer is a backup of the undecryptable log.
func (s *EntryStore) ListRecoveryCandidates() []string {
	dir := filepath.Dir(s.keyPath)

	var found []string
	for _, name := range recoveryCandidateNames {
		candidate := filepath.Join(dir, name)
		if candidate == s.keyPath {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			found = append(found, candidate)
		}
	}

	return found
}

// ApplyRecoveryKey backs up the active key file under the .previous suffix
// and replaces it with the contents of the chosen candidate.
//
// The in-memory key is deliberately not reloaded: key material is resolved
// once at process start and cached by everything built on it, so the caller
// must restart the process after a successful swap.
func (s *EntryStore) ApplyRecoveryKey(candidate string) error {
	replacement, err := os.ReadFile(candidate)
	if err != nil {
		return fmt.Errorf("read recovery key %s: %w", candidate, err)
	}

	if current, err := os.ReadFile(s.keyPath); err == nil {
		backupPath := s.keyPath + previousKeySuffix
		if err := os.WriteFile(backupPath, current, 0o600); err != nil {
			return fmt.Errorf("back up current key to %s: %w", backupPath, err)
		}
	}

	if err := os.WriteFile(s.keyPath, replacement, 0o600); err != nil {
		return fmt.Errorf("replace key file: %w", err)
	}
	crypto.Harden(s.keyPath, s.log)

	s.log.Info().Str("candidate", candidate).Str("key", s.keyPath).
		Msg("recovery key applied; process restart required")
	return nil
}

// BackupUndecryptableLog copies the entry log to a timestamped sibling path
// so the ciphertext stays recoverable if the right key ever turns up.
// Returns the backup path.
func (s *EntryStore) BackupUndecryptableLog() (string, error) {
	data, err := os.ReadFile(s.logPath)
	if err != nil {
		return "", fmt.Errorf("read entry log: %w", err)
	}

	backup := fmt.Sprintf("%s.backup_%s", s.logPath, time.Now().Format(backupTimeLayout))
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", fmt.Errorf("write log backup: %w", err)
	}

	s.log.Info().Str("path", backup).Msg("created backup of undecryptable entry log")
	return backup, nil
}
