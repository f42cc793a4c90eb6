// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/legalia/legalia-tui/internal/util"
)

const (
	tokenFileName = "session.token"
	keyFileName   = "session.key"
)

// ErrNoToken indicates no persisted session exists.
var ErrNoToken = errors.New("no stored session")

// Store persists the bearer token sealed at rest. The sealing key is
// generated on first use and never leaves the install directory.
type Store struct {
	dir string
}

// NewStore creates a token store rooted at dir. The directory is created
// on the first save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save seals and persists the token.
func (s *Store) Save(token string) error {
	key, err := s.loadOrCreateKey()
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("failed to init cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(token), nil)

	return util.AtomicWriteFile(filepath.Join(s.dir, tokenFileName), sealed, 0o600)
}

// Load returns the persisted token. ErrNoToken when none exists; a token
// sealed under a lost or replaced key is indistinguishable from none.
func (s *Store) Load() (string, error) {
	sealed, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	key, err := s.loadKey()
	if err != nil {
		return "", ErrNoToken
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return "", ErrNoToken
	}

	nonce, box := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	token, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", ErrNoToken
	}
	return string(token), nil
}

// Clear removes the persisted token. Clearing an empty store is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// loadKey reads the sealing key without creating one.
func (s *Store) loadKey() ([]byte, error) {
	key, err := os.ReadFile(filepath.Join(s.dir, keyFileName))
	if err != nil {
		return nil, err
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("sealing key has wrong size %d", len(key))
	}
	return key, nil
}

// loadOrCreateKey reads the sealing key, generating it on first use.
func (s *Store) loadOrCreateKey() ([]byte, error) {
	if key, err := s.loadKey(); err == nil {
		return key, nil
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate sealing key: %w", err)
	}
	if err := util.AtomicWriteFile(filepath.Join(s.dir, keyFileName), key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}
