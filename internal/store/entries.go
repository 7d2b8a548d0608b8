// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the encrypted append-log of journal entries.
//
// The backing file holds one self-contained ciphertext token per line, with
// no cross-entry dependency: a corrupted line costs exactly one entry.
// Appending is the only write path for new data; deletes go through a full
// read-filter-rewrite cycle. The package also owns the recovery protocol
// used when nothing in the log decrypts (see recovery.go).
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// EntryStore is the aggregate root over the entry log file. Entries have no
// identity beyond their serialized content.
type EntryStore struct {
	logPath string
	keyPath string
	cipher  crypto.Encryptor
	log     *logger.Logger
}

// NewEntryStore constructs an EntryStore over the resolved log path. keyPath
// is the active key file location, needed only by the recovery protocol.
func NewEntryStore(logPath, keyPath string, cipher crypto.Encryptor, log *logger.Logger) *EntryStore {
	return &EntryStore{logPath: logPath, keyPath: keyPath, cipher: cipher, log: log}
}

// LogPath returns the entry log location the store operates on.
func (s *EntryStore) LogPath() string {
	return s.logPath
}

// ReadReport summarizes one pass over the log.
type ReadReport struct {
	// Loaded is the number of lines that decrypted successfully.
	Loaded int

	// Skipped is the number of lines that failed to decrypt and were
	// dropped from the result without altering the file.
	Skipped int
}

// SaveEntry serializes, encrypts and appends a single entry as one new line.
// A blank body is silently rejected: the return value is false and no error
// is raised. An empty date defaults to today.
func (s *EntryStore) SaveEntry(body, mood, date string) (bool, error) {
	if strings.TrimSpace(body) == "" {
		return false, nil
	}

	entry := models.NewEntry(body, mood, date)
	token, err := s.cipher.Encrypt(entry.Raw)
	if err != nil {
		return false, fmt.Errorf("%w: encrypt entry: %v", ErrStorageWrite, err)
	}

	if dir := filepath.Dir(s.logPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return false, fmt.Errorf("%w: create log dir: %v", ErrStorageWrite, err)
		}
	}

	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return false, fmt.Errorf("%w: open log: %v", ErrStorageWrite, err)
	}
	if _, err = f.WriteString(token + "\n"); err != nil {
		f.Close()
		return false, fmt.Errorf("%w: append entry: %v", ErrStorageWrite, err)
	}
	if err = f.Close(); err != nil {
		return false, fmt.Errorf("%w: close log: %v", ErrStorageWrite, err)
	}
	crypto.Harden(s.logPath, s.log)

	return true, nil
}

// ReadEntries decrypts every line of the log independently, in file order.
//
// A line that fails to decrypt is skipped and counted in the report, never
// fatal to the whole read. The exception: when every line of a non-empty log
// fails, no entries are returned and the error matches
// [ErrLogUndecryptable] so the caller can run the recovery protocol.
// A missing log file is an empty store, not an error.
func (s *EntryStore) ReadEntries() ([]models.Entry, ReadReport, error) {
	var report ReadReport

	data, err := os.ReadFile(s.logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, report, nil
	}
	if err != nil {
		return nil, report, fmt.Errorf("read entry log: %w", err)
	}

	var entries []models.Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		plaintext, err := s.cipher.Decrypt(line)
		if err != nil {
			report.Skipped++
			continue
		}
		entries = append(entries, models.ParseEntry(plaintext))
	}
	report.Loaded = len(entries)

	if report.Skipped > 0 && report.Loaded == 0 {
		s.log.Error().Int("lines", report.Skipped).Str("path", s.logPath).
			Msg("no line of the entry log decrypts under the active key")
		return nil, report, fmt.Errorf("%w: %d lines failed", ErrLogUndecryptable, report.Skipped)
	}
	if report.Skipped > 0 {
		s.log.Warn().Int("loaded", report.Loaded).Int("skipped", report.Skipped).
			Msg("some entries could not be decrypted and were skipped")
	}

	return entries, report, nil
}

// DeleteEntry removes every entry whose exact decrypted text equals the
// target's and rewrites the log. Two entries with byte-identical serialized
// form are indistinguishable, so all duplicates of the target go at once;
// a documented limitation of content-based identity, not a bug.
func (s *EntryStore) DeleteEntry(target models.Entry) error {
	entries, _, err := s.ReadEntries()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Raw != target.Raw {
			kept = append(kept, e)
		}
	}

	return s.RewriteEntries(kept)
}

// DeleteEntriesByDate removes every entry whose parsed header date equals
// date and rewrites the log. Entries without a parseable header are
// conservatively kept.
func (s *EntryStore) DeleteEntriesByDate(date string) error {
	entries, _, err := s.ReadEntries()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if !e.Headered || e.Date != date {
			kept = append(kept, e)
		}
	}

	return s.RewriteEntries(kept)
}

// RewriteEntries re-encrypts the given entries and replaces the whole log.
// The new content is staged in a temporary file in the log's directory and
// moved into place with a rename, so a failed rewrite leaves the previous
// log intact. Fails wholesale with an error matching [ErrStorageWrite].
func (s *EntryStore) RewriteEntries(entries []models.Entry) error {
	dir := filepath.Dir(s.logPath)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create log dir: %v", ErrStorageWrite, err)
		}
	}

	var b strings.Builder
	for _, e := range entries {
		raw := e.Raw
		if raw == "" {
			raw = models.NewEntry(e.Body, e.Mood, e.Date).Raw
		}
		token, err := s.cipher.Encrypt(raw)
		if err != nil {
			return fmt.Errorf("%w: encrypt entry: %v", ErrStorageWrite, err)
		}
		b.WriteString(token)
		b.WriteString("\n")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.logPath)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp log: %v", ErrStorageWrite, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp log: %v", ErrStorageWrite, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp log: %v", ErrStorageWrite, err)
	}
	if err = os.Rename(tmpName, s.logPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace log: %v", ErrStorageWrite, err)
	}
	crypto.Harden(s.logPath, s.log)

	return nil
}

// ExportEntries decrypts the whole log and writes every entry as a plain
// text block, separated by blank lines, to destination. This intentionally
// produces an unencrypted copy at a caller-chosen path; it is the
// user-initiated escape hatch out of the encrypted format.
func (s *EntryStore) ExportEntries(destination string) error {
	entries, _, err := s.ReadEntries()
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Raw)
		b.WriteString("\n\n")
	}

	if err := os.WriteFile(destination, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: write export file: %v", ErrStorageWrite, err)
	}

	s.log.Info().Int("entries", len(entries)).Str("path", destination).
		Msg("exported entries as plaintext")
	return nil
}

// OrganizeEntriesByDate groups successfully parsed entries by their header
// date. Within a group, entries keep file order (oldest appended first).
// Unheadered entries are excluded from grouping; they remain visible in
// flat reads only.
func (s *EntryStore) OrganizeEntriesByDate() (map[string][]models.Entry, error) {
	entries, _, err := s.ReadEntries()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Entry)
	for _, e := range entries {
		if !e.Headered {
			continue
		}
		grouped[e.Date] = append(grouped[e.Date], e)
	}

	return grouped, nil
}
