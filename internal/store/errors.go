package store

import "errors"

// Sentinel errors returned by the entry store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStorageWrite is returned when writing the entry log fails. Fatal
	// for the triggering operation only; previously written data is
	// unaffected.
	ErrStorageWrite = errors.New("failed to write entry log")

	// ErrLogUndecryptable is returned by ReadEntries when the log is
	// non-empty and not a single line decrypts under the active key. It is
	// the signal to start the recovery protocol; no entries are reported
	// alongside it.
	ErrLogUndecryptable = errors.New("no entry in the log could be decrypted")
)
