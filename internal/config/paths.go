// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths holds the resolved locations of every file the store operates on.
// Resolution happens exactly once at startup; components receive these paths
// through their constructors and never search the filesystem themselves.
//
// All files live in one directory so the recovery protocol can probe for
// alternate key files next to the active one.
type Paths struct {
	// KeyPath is the encryption key file.
	KeyPath string
	// PasswordPath is the encrypted password file.
	PasswordPath string
	// LogPath is the encrypted entry log.
	LogPath string
	// LegacyPath is the plaintext legacy entries file checked by migration.
	LegacyPath string
}

// ResolvePaths joins the configured file names onto one resolved storage
// directory. Idempotent: with no filesystem change, two calls yield the same
// paths. Side effect: the chosen directory is created if missing.
func ResolvePaths(cfg *StructuredConfig) (*Paths, error) {
	dir, err := resolveStorageDir(cfg)
	if err != nil {
		return nil, err
	}

	return &Paths{
		KeyPath:      filepath.Join(dir, cfg.Storage.KeyFile),
		PasswordPath: filepath.Join(dir, cfg.Storage.PasswordFile),
		LogPath:      filepath.Join(dir, cfg.Storage.DataFile),
		LegacyPath:   filepath.Join(dir, cfg.Storage.LegacyFile),
	}, nil
}

// resolveStorageDir picks the directory all store files live in, in priority
// order:
//
//  1. the explicitly configured directory (flag, env or JSON);
//  2. a previously established store: the first of the current working
//     directory, the home directory, or the hidden per-app subdirectory of
//     home that already contains one of the store files;
//  3. a fresh store: the OS per-user configuration directory for the app,
//     falling back to the current working directory.
//
// Returns an error matching [ErrNoWritableLocation] when the chosen
// directory cannot be created.
func resolveStorageDir(cfg *StructuredConfig) (string, error) {
	if cfg.Storage.Dir != "" {
		dir, err := filepath.Abs(cfg.Storage.Dir)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoWritableLocation, err)
		}
		return dir, ensureDir(dir)
	}

	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()

	var hidden string
	if home != "" {
		hidden = filepath.Join(home, hiddenDirName(cfg.App.Name))
	}

	markers := []string{cfg.Storage.PasswordFile, cfg.Storage.KeyFile, cfg.Storage.DataFile, cfg.Storage.LegacyFile}
	for _, dir := range []string{cwd, home, hidden} {
		if dir == "" {
			continue
		}
		for _, name := range markers {
			if name == "" {
				continue
			}
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
				return dir, nil
			}
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		dir := filepath.Join(configDir, cfg.App.Name)
		if err := ensureDir(dir); err == nil {
			return dir, nil
		}
	}

	if cwd != "" {
		return cwd, nil
	}

	return "", ErrNoWritableLocation
}

// hiddenDirName derives the hidden home subdirectory name from the app name,
// e.g. "PersonalDiary" -> ".personaldiary".
func hiddenDirName(appName string) string {
	name := strings.ToLower(strings.ReplaceAll(appName, " ", ""))
	if name == "" {
		name = "diary"
	}
	return "." + name
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrNoWritableLocation, dir, err)
	}
	return nil
}

// validate checks that the final [DiaryConfig] satisfies all application
// invariants before it is used at startup.
func (cfg *DiaryConfig) validate() error {
	if cfg.App.Name == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Paths.KeyPath == "" || cfg.Paths.PasswordPath == "" || cfg.Paths.LogPath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
