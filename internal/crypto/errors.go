package crypto

import "errors"

// Sentinel errors returned by the crypto layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrKeyUnavailable is returned when no encryption key can be loaded and
	// a replacement cannot be generated at any resolvable location. Fatal:
	// nothing in the store can operate without a key.
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// ErrDecryptionFailed is returned when a ciphertext token is malformed
	// or its authentication tag does not verify (tampering or wrong key).
	// The entry store's recovery protocol branches specifically on this
	// error kind, so it must stay distinct from every other failure.
	ErrDecryptionFailed = errors.New("decryption failed")
)
