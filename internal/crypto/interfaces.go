package crypto

// Encryptor is the cipher surface consumed by the password gate and the
// entry store. It knows nothing about files, entries or users; its only job
// is turning plaintext into self-contained tokens and back.
type Encryptor interface {
	// Encrypt seals plaintext into a single-line ciphertext token.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a token produced by Encrypt. Returns an error matching
	// [ErrDecryptionFailed] when the token is malformed, tampered with, or
	// sealed under a different key.
	Decrypt(token string) (string, error)
}
