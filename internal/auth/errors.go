package auth

import "errors"

// Sentinel errors returned by the password gate. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrPasswordCorrupted is returned when the password file exists but its
	// token cannot be decrypted. Unlike the key store, the gate never
	// recovers silently: corruption is surfaced so the caller can offer a
	// reset instead of destroying the only credential.
	ErrPasswordCorrupted = errors.New("password file is corrupted")

	// ErrSetupAbandoned is returned when initial password setup is cancelled
	// or the confirmation attempt budget is exhausted. The caller must not
	// enter the authenticated session.
	ErrSetupAbandoned = errors.New("password setup abandoned")

	// ErrPasswordMismatch is returned when a candidate password and its
	// confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmptyPassword is returned when a candidate password is empty or
	// whitespace only.
	ErrEmptyPassword = errors.New("password must not be empty")
)
