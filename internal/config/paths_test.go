// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStructuredConfig(dir string) *StructuredConfig {
	cfg := defaultConfig()
	cfg.Storage.Dir = dir
	return cfg
}

func TestResolvePaths_ExplicitDir(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "diary-store")
	cfg := testStructuredConfig(dir)

	// Act
	paths, err := ResolvePaths(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".key.key"), paths.KeyPath)
	assert.Equal(t, filepath.Join(dir, ".password.txt"), paths.PasswordPath)
	assert.Equal(t, filepath.Join(dir, ".diary_data"), paths.LogPath)
	assert.Equal(t, filepath.Join(dir, "diary_entries.txt"), paths.LegacyPath)

	// The explicit directory is created as a side effect.
	assert.DirExists(t, dir)
}

func TestResolvePaths_Idempotent(t *testing.T) {
	cfg := testStructuredConfig(filepath.Join(t.TempDir(), "diary-store"))

	first, err := ResolvePaths(cfg)
	require.NoError(t, err)
	second, err := ResolvePaths(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolvePaths_AllFilesShareOneDir(t *testing.T) {
	cfg := testStructuredConfig(filepath.Join(t.TempDir(), "diary-store"))

	paths, err := ResolvePaths(cfg)
	require.NoError(t, err)

	dir := filepath.Dir(paths.KeyPath)
	assert.Equal(t, dir, filepath.Dir(paths.PasswordPath))
	assert.Equal(t, dir, filepath.Dir(paths.LogPath))
	assert.Equal(t, dir, filepath.Dir(paths.LegacyPath))
}

func TestHiddenDirName(t *testing.T) {
	assert.Equal(t, ".personaldiary", hiddenDirName("PersonalDiary"))
	assert.Equal(t, ".mydiary", hiddenDirName("My Diary"))
	assert.Equal(t, ".diary", hiddenDirName(""))
}

func TestDiaryConfigValidate(t *testing.T) {
	valid := &DiaryConfig{
		App: App{Name: "PersonalDiary"},
		Paths: Paths{
			KeyPath:      "/store/.key.key",
			PasswordPath: "/store/.password.txt",
			LogPath:      "/store/.diary_data",
		},
	}
	assert.NoError(t, valid.validate())

	noName := *valid
	noName.App.Name = ""
	assert.ErrorIs(t, noName.validate(), ErrInvalidAppConfigs)

	noKey := *valid
	noKey.Paths.KeyPath = ""
	assert.ErrorIs(t, noKey.validate(), ErrInvalidStorageConfigs)
}
