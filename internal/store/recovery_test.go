// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecoveryCandidates(t *testing.T) {
	s, _ := newTestStore(t)
	dir := filepath.Dir(s.keyPath)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.key.bak"), []byte("old-key"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.key.backup"), []byte("older-key"), 0o600))

	candidates := s.ListRecoveryCandidates()

	assert.Equal(t, []string{
		filepath.Join(dir, "key.key.bak"),
		filepath.Join(dir, "key.key.backup"),
	}, candidates)
}

func TestListRecoveryCandidates_SkipsActiveKey(t *testing.T) {
	s, _ := newTestStore(t)
	dir := filepath.Dir(s.keyPath)

	// Point the store at one of the conventional names: it must not offer
	// the active key as its own recovery candidate.
	s.keyPath = filepath.Join(dir, "key.key")
	require.NoError(t, os.WriteFile(s.keyPath, []byte("active"), 0o600))

	assert.Empty(t, s.ListRecoveryCandidates())
}

func TestListRecoveryCandidates_NoneFound(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Empty(t, s.ListRecoveryCandidates())
}

func TestApplyRecoveryKey(t *testing.T) {
	s, _ := newTestStore(t)
	dir := filepath.Dir(s.keyPath)

	require.NoError(t, os.WriteFile(s.keyPath, []byte("current-key"), 0o600))
	candidate := filepath.Join(dir, "key.key.bak")
	require.NoError(t, os.WriteFile(candidate, []byte("recovered-key"), 0o600))

	require.NoError(t, s.ApplyRecoveryKey(candidate))

	active, err := os.ReadFile(s.keyPath)
	require.NoError(t, err)
	assert.Equal(t, "recovered-key", string(active))

	previous, err := os.ReadFile(s.keyPath + previousKeySuffix)
	require.NoError(t, err)
	assert.Equal(t, "current-key", string(previous))
}

func TestApplyRecoveryKey_NoCurrentKey(t *testing.T) {
	s, _ := newTestStore(t)
	dir := filepath.Dir(s.keyPath)

	candidate := filepath.Join(dir, "key.key.bak")
	require.NoError(t, os.WriteFile(candidate, []byte("recovered-key"), 0o600))

	require.NoError(t, s.ApplyRecoveryKey(candidate))

	active, err := os.ReadFile(s.keyPath)
	require.NoError(t, err)
	assert.Equal(t, "recovered-key", string(active))
	assert.NoFileExists(t, s.keyPath+previousKeySuffix)
}

func TestApplyRecoveryKey_MissingCandidate(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.ApplyRecoveryKey(filepath.Join(filepath.Dir(s.keyPath), "key.key.bak"))

	assert.Error(t, err)
}

func TestBackupUndecryptableLog(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(s.LogPath(), []byte("ciphertext lines\n"), 0o600))

	backup, err := s.BackupUndecryptableLog()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(backup, s.LogPath()+".backup_"))

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "ciphertext lines\n", string(data))

	// The original log stays in place.
	assert.FileExists(t, s.LogPath())
}

func TestBackupUndecryptableLog_MissingLog(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.BackupUndecryptableLog()

	assert.Error(t, err)
}
