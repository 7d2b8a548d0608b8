// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-diary-keeper/internal/crypto"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()

	cipher, err := crypto.NewCipher(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	return NewGate(filepath.Join(t.TempDir(), ".password.txt"), cipher, logger.Nop())
}

func TestGate_SetAndAuthenticate(t *testing.T) {
	gate := newTestGate(t)
	assert.False(t, gate.IsSet())

	require.NoError(t, gate.SetInitialPassword("secret", "secret"))
	assert.True(t, gate.IsSet())

	ok, err := gate.Authenticate("secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Authenticate("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGate_SetInitialPassword_Mismatch(t *testing.T) {
	gate := newTestGate(t)

	err := gate.SetInitialPassword("secret", "sceret")

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.False(t, gate.IsSet())
}

func TestGate_SetInitialPassword_Empty(t *testing.T) {
	gate := newTestGate(t)

	err := gate.SetInitialPassword("   ", "   ")

	assert.ErrorIs(t, err, ErrEmptyPassword)
	assert.False(t, gate.IsSet())
}

func TestGate_PasswordStoredEncrypted(t *testing.T) {
	gate := newTestGate(t)
	require.NoError(t, gate.SetInitialPassword("secret", "secret"))

	data, err := os.ReadFile(gate.path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
}

func TestGate_Authenticate_CorruptedFile(t *testing.T) {
	gate := newTestGate(t)
	require.NoError(t, os.WriteFile(gate.path, []byte("this is not a token"), 0o600))

	_, err := gate.Authenticate("anything")

	assert.ErrorIs(t, err, ErrPasswordCorrupted)
}

func TestGate_ResetPassword(t *testing.T) {
	gate := newTestGate(t)
	require.NoError(t, gate.SetInitialPassword("old", "old"))

	require.NoError(t, gate.ResetPassword("new", "new"))

	ok, err := gate.Authenticate("old")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Authenticate("new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGate_RunSetup_SucceedsOnRetry(t *testing.T) {
	gate := newTestGate(t)

	attempts := 0
	prompt := func() (string, string, error) {
		attempts++
		if attempts == 1 {
			return "secret", "typo", nil
		}
		return "secret", "secret", nil
	}

	require.NoError(t, gate.RunSetup(prompt))
	assert.Equal(t, 2, attempts)
	assert.True(t, gate.IsSet())
}

func TestGate_RunSetup_AbandonedAfterThreeAttempts(t *testing.T) {
	gate := newTestGate(t)

	attempts := 0
	prompt := func() (string, string, error) {
		attempts++
		return "secret", "never matches", nil
	}

	err := gate.RunSetup(prompt)

	assert.ErrorIs(t, err, ErrSetupAbandoned)
	assert.Equal(t, 3, attempts)
	assert.False(t, gate.IsSet())
}

func TestGate_RunSetup_PromptCancelled(t *testing.T) {
	gate := newTestGate(t)

	prompt := func() (string, string, error) {
		return "", "", errors.New("user pressed escape")
	}

	err := gate.RunSetup(prompt)

	assert.ErrorIs(t, err, ErrSetupAbandoned)
	assert.False(t, gate.IsSet())
}
