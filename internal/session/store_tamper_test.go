// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tampering with any byte of the sealed token file must make Load fail
// rather than return corrupted data.
func TestStore_TamperedTokenRejected(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save("tok-secret"))

	path := filepath.Join(dir, tokenFileName)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	// Flip one bit in the ciphertext (past the nonce prefix).
	tampered := make([]byte, len(raw))
	copy(tampered, raw)
	tampered[len(tampered)-1] ^= 0x01
	require.NoError(t, os.WriteFile(path, tampered, 0o600))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoToken, "tampered token must read as no session")
}

func TestStore_TruncatedTokenRejected(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save("tok-secret"))

	path := filepath.Join(dir, tokenFileName)
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_SaveOverwritesPreviousToken(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}
