// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level configuration container for the
// go-diary-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the application name
	// (used for per-user storage directories) and version.
	App App `envPrefix:"APP_"`

	// Storage holds the names of the files the store operates on and the
	// optional explicit directory they live in.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name is the application name. It names the per-user storage
	// directory and the hidden home subdirectory probed during path
	// resolution.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage holds file names and the optional explicit storage directory.
// File names are joined onto one resolved directory: all store files live
// side by side so the recovery protocol can probe key siblings.
type Storage struct {
	// Dir is an explicit directory for all store files. When set it wins
	// over every other resolution rule.
	// Env: STORAGE_DIR
	Dir string `env:"DIR"`

	// KeyFile is the encryption key file name.
	// Env: STORAGE_KEY_FILE
	KeyFile string `env:"KEY_FILE"`

	// PasswordFile is the encrypted password file name.
	// Env: STORAGE_PASSWORD_FILE
	PasswordFile string `env:"PASSWORD_FILE"`

	// DataFile is the encrypted entry log file name.
	// Env: STORAGE_DATA_FILE
	DataFile string `env:"DATA_FILE"`

	// LegacyFile is the plaintext legacy entries file name checked by the
	// one-shot migration.
	// Env: STORAGE_LEGACY_FILE
	LegacyFile string `env:"LEGACY_FILE"`
}

// defaultConfig returns the built-in defaults. They are merged last, so any
// value from env, flags or JSON wins over them.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name: "PersonalDiary",
		},
		Storage: Storage{
			KeyFile:      ".key.key",
			PasswordFile: ".password.txt",
			DataFile:     ".diary_data",
			LegacyFile:   "diary_entries.txt",
		},
	}
}

// DiaryConfig is the application-facing view of the merged configuration:
// app metadata plus the fully resolved file paths every component receives
// through its constructor.
type DiaryConfig struct {
	// App contains application-level settings.
	App App
	// Paths contains the resolved locations of all store files.
	Paths Paths
}

// GetDiaryConfig loads, merges and validates the configuration from all
// sources in the following order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// It then resolves the storage paths once, so components never perform
// their own filesystem searches.
func GetDiaryConfig() (*DiaryConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	paths, err := ResolvePaths(cfg)
	if err != nil {
		return nil, err
	}

	diaryCfg := &DiaryConfig{
		App:   cfg.App,
		Paths: *paths,
	}

	return diaryCfg, diaryCfg.validate()
}
