// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrate upgrades a legacy plaintext entries file into the current
// encrypted log format. The migration runs once at startup, before normal
// operation, and only when legacy artifacts are detected.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/internal/store"
	"github.com/MKhiriev/go-diary-keeper/models"
)

// ErrMigrationFailed wraps any failure during legacy migration. Non-fatal to
// the application: the legacy file remains in place and the migration can be
// retried on the next start.
var ErrMigrationFailed = errors.New("legacy migration failed")

// legacyHeaderMarker delimits entries in the legacy plaintext file. The
// legacy header carries only a date; migrated entries get the neutral mood.
const legacyHeaderMarker = "--- Entry on "

// bakSuffix is appended to the legacy file after a successful migration.
// The legacy file is renamed, never deleted.
const bakSuffix = ".bak"

// Migrator is the one-shot upgrade path from the legacy plaintext layout
// into the encrypted entry log.
type Migrator struct {
	legacyPath string
	entries    *store.EntryStore
	log        *logger.Logger
}

// NewMigrator constructs a Migrator reading from legacyPath and re-saving
// through entries.
func NewMigrator(legacyPath string, entries *store.EntryStore, log *logger.Logger) *Migrator {
	return &Migrator{legacyPath: legacyPath, entries: entries, log: log}
}

// Needed reports whether a migration should be offered: the legacy file
// exists and the encrypted log does not. Running Run when Needed is false is
// a no-op, which makes the migration idempotent across restarts.
func (m *Migrator) Needed() bool {
	if _, err := os.Stat(m.legacyPath); err != nil {
		return false
	}
	if _, err := os.Stat(m.entries.LogPath()); err == nil {
		return false
	}
	return true
}

// Run migrates every legacy entry into the encrypted log, then renames the
// legacy file with the .bak suffix. Returns the number of entries migrated.
//
// A failure mid-way surfaces as an error matching ErrMigrationFailed and
// leaves already re-saved entries in the log; partial migration is accepted
// and not rolled back.
func (m *Migrator) Run() (int, error) {
	if !m.Needed() {
		return 0, nil
	}

	data, err := os.ReadFile(m.legacyPath)
	if err != nil {
		return 0, fmt.Errorf("%w: read legacy file: %v", ErrMigrationFailed, err)
	}

	migrated := 0
	for _, block := range splitLegacyEntries(string(data)) {
		date, body := parseLegacyEntry(block)
		saved, err := m.entries.SaveEntry(body, models.MoodNeutral, date)
		if err != nil {
			return migrated, fmt.Errorf("%w: re-save entry: %v", ErrMigrationFailed, err)
		}
		if saved {
			migrated++
		}
	}

	backup := m.legacyPath + bakSuffix
	if err := os.Rename(m.legacyPath, backup); err != nil {
		return migrated, fmt.Errorf("%w: rename legacy file: %v", ErrMigrationFailed, err)
	}

	m.log.Info().Int("entries", migrated).Str("backup", backup).
		Msg("migrated legacy entries into encrypted log")
	return migrated, nil
}

// splitLegacyEntries cuts the legacy file into per-entry blocks, each
// starting with its header line. Leading content before the first header is
// discarded, matching the historical reader.
func splitLegacyEntries(content string) []string {
	parts := strings.Split(content, "\n"+legacyHeaderMarker)

	var blocks []string
	for i, part := range parts {
		if i == 0 {
			if !strings.HasPrefix(part, legacyHeaderMarker) {
				continue
			}
		} else {
			part = legacyHeaderMarker + part
		}
		if strings.TrimSpace(part) != "" {
			blocks = append(blocks, part)
		}
	}

	return blocks
}

// parseLegacyEntry recovers the date and body from one legacy block. A
// header without a recognizable date yields the Unknown placeholder.
func parseLegacyEntry(block string) (date, body string) {
	header, rest, _ := strings.Cut(block, "\n")

	date = models.UnknownDate
	if strings.HasPrefix(header, legacyHeaderMarker) {
		d := strings.TrimPrefix(header, legacyHeaderMarker)
		d = strings.TrimSuffix(strings.TrimSpace(d), "---")
		if d = strings.TrimSpace(d); d != "" {
			date = d
		}
	}

	return date, rest
}
