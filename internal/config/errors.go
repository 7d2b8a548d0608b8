package config

import "errors"

// Validation errors returned by [DiaryConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty file name after merging all sources).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing application name).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrNoWritableLocation indicates that no storage directory could be
	// resolved or created for the store files.
	ErrNoWritableLocation = errors.New("no writable storage location")
)
