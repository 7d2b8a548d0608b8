// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/MKhiriev/go-diary-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*EntryStore, *crypto.Cipher) {
	t.Helper()

	cipher, err := crypto.NewCipher(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	dir := t.TempDir()
	s := NewEntryStore(filepath.Join(dir, ".diary_data"), filepath.Join(dir, ".key.key"), cipher, logger.Nop())
	return s, cipher
}

// appendRawLine seals arbitrary plaintext with cipher and appends it to the
// log, bypassing SaveEntry. Used to seed unheadered records.
func appendRawLine(t *testing.T, s *EntryStore, cipher *crypto.Cipher, raw string) {
	t.Helper()

	token, err := cipher.Encrypt(raw)
	require.NoError(t, err)

	f, err := os.OpenFile(s.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(token + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func appendUndecryptableLine(t *testing.T, s *EntryStore) {
	t.Helper()

	junk := base64.URLEncoding.EncodeToString(bytes.Repeat([]byte{0xAB}, 40))
	f, err := os.OpenFile(s.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(junk + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestSaveEntry_AppendsInOrder(t *testing.T) {
	s, _ := newTestStore(t)

	for _, body := range []string{"first", "second", "third"} {
		saved, err := s.SaveEntry(body, "😊 Happy", "June 01, 2024")
		require.NoError(t, err)
		assert.True(t, saved)
	}

	entries, report, err := s.ReadEntries()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Body)
	assert.Equal(t, "second", entries[1].Body)
	assert.Equal(t, "third", entries[2].Body)
	assert.Equal(t, ReadReport{Loaded: 3, Skipped: 0}, report)
}

func TestSaveEntry_ReadBackPreservesFields(t *testing.T) {
	s, _ := newTestStore(t)

	saved, err := s.SaveEntry("Had a great day!", "😊 Happy", "June 1, 2024")
	require.NoError(t, err)
	require.True(t, saved)

	entries, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "June 1, 2024", entries[0].Date)
	assert.Equal(t, "😊 Happy", entries[0].Mood)
	assert.Equal(t, "Had a great day!", entries[0].Body)
	assert.True(t, entries[0].Headered)
}

func TestSaveEntry_BlankBodyRejected(t *testing.T) {
	s, _ := newTestStore(t)

	saved, err := s.SaveEntry("   \n\t ", "😊 Happy", "June 01, 2024")

	require.NoError(t, err)
	assert.False(t, saved)
	assert.NoFileExists(t, s.LogPath())
}

func TestSaveEntry_TokensAreOpaque(t *testing.T) {
	s, _ := newTestStore(t)

	saved, err := s.SaveEntry("something private", "😢 Sad", "June 01, 2024")
	require.NoError(t, err)
	require.True(t, saved)

	data, err := os.ReadFile(s.LogPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "something private")
}

func TestReadEntries_MissingFileIsEmptyStore(t *testing.T) {
	s, _ := newTestStore(t)

	entries, report, err := s.ReadEntries()

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, ReadReport{}, report)
}

func TestReadEntries_SkipsCorruptedLines(t *testing.T) {
	s, _ := newTestStore(t)

	for _, body := range []string{"one", "two", "three"} {
		_, err := s.SaveEntry(body, "", "June 01, 2024")
		require.NoError(t, err)
	}
	appendUndecryptableLine(t, s)

	entries, report, err := s.ReadEntries()

	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, ReadReport{Loaded: 3, Skipped: 1}, report)
}

func TestReadEntries_AllUndecryptable(t *testing.T) {
	s, _ := newTestStore(t)

	appendUndecryptableLine(t, s)
	appendUndecryptableLine(t, s)

	entries, report, err := s.ReadEntries()

	assert.ErrorIs(t, err, ErrLogUndecryptable)
	assert.Empty(t, entries)
	assert.Equal(t, 2, report.Skipped)
}

func TestDeleteEntry_RemovesAllDuplicates(t *testing.T) {
	s, _ := newTestStore(t)

	// Two byte-identical records plus one distinct record.
	_, err := s.SaveEntry("repeated", "😐 Neutral", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("repeated", "😐 Neutral", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("kept", "😐 Neutral", "June 01, 2024")
	require.NoError(t, err)

	target := models.NewEntry("repeated", "😐 Neutral", "June 01, 2024")
	require.NoError(t, s.DeleteEntry(target))

	entries, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Body)
}

func TestDeleteEntriesByDate(t *testing.T) {
	s, cipher := newTestStore(t)

	_, err := s.SaveEntry("gone", "", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("stays", "", "June 02, 2024")
	require.NoError(t, err)
	appendRawLine(t, s, cipher, "unheadered free text")

	require.NoError(t, s.DeleteEntriesByDate("June 01, 2024"))

	entries, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "stays", entries[0].Body)
	assert.False(t, entries[1].Headered)
	assert.Equal(t, "unheadered free text", entries[1].Body)
}

func TestRewriteEntries_ReplacesLog(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SaveEntry("old one", "", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("old two", "", "June 01, 2024")
	require.NoError(t, err)

	replacement := []models.Entry{models.NewEntry("only survivor", "😌 Calm", "June 03, 2024")}
	require.NoError(t, s.RewriteEntries(replacement))

	entries, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only survivor", entries[0].Body)
	assert.Equal(t, "June 03, 2024", entries[0].Date)
}

func TestRewriteEntries_PreservesRawOfUnparsedRecords(t *testing.T) {
	s, cipher := newTestStore(t)

	appendRawLine(t, s, cipher, "free text without a header")

	entries, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, s.RewriteEntries(entries))

	reread, _, err := s.ReadEntries()
	require.NoError(t, err)
	require.Len(t, reread, 1)
	assert.Equal(t, "free text without a header", reread[0].Raw)
}

func TestExportEntries_PlaintextBlocks(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.SaveEntry("first entry", "😊 Happy", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("second entry", "😢 Sad", "June 02, 2024")
	require.NoError(t, err)

	destination := filepath.Join(t.TempDir(), "diary_export.txt")
	require.NoError(t, s.ExportEntries(destination))

	data, err := os.ReadFile(destination)
	require.NoError(t, err)

	want := "--- Entry on June 01, 2024 | Mood: 😊 Happy ---\nfirst entry\n\n" +
		"--- Entry on June 02, 2024 | Mood: 😢 Sad ---\nsecond entry\n\n"
	assert.Equal(t, want, string(data))
}

func TestOrganizeEntriesByDate(t *testing.T) {
	s, cipher := newTestStore(t)

	_, err := s.SaveEntry("morning", "", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("evening", "", "June 01, 2024")
	require.NoError(t, err)
	_, err = s.SaveEntry("next day", "", "June 02, 2024")
	require.NoError(t, err)
	appendRawLine(t, s, cipher, "unheadered text is excluded from grouping")

	grouped, err := s.OrganizeEntriesByDate()
	require.NoError(t, err)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["June 01, 2024"], 2)
	assert.Equal(t, "morning", grouped["June 01, 2024"][0].Body)
	assert.Equal(t, "evening", grouped["June 01, 2024"][1].Body)
	require.Len(t, grouped["June 02, 2024"], 1)
}
