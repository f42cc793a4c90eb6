// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// STORE TESTS
// =============================================================================

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save("tok-secret"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "tok-secret" {
		t.Errorf("Load = %q", got)
	}
}

func TestStore_SealedAtRest(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save("tok-secret"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, tokenFileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) == "tok-secret" {
		t.Fatal("token stored in the clear")
	}

	info, err := os.Stat(filepath.Join(dir, tokenFileName))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}

func TestStore_LoadWithoutSave(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load on empty store: err = %v, want ErrNoToken", err)
	}
}

func TestStore_ClearThenLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Load after Clear: err = %v, want ErrNoToken", err)
	}
	// Clearing twice must stay quiet.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestStore_ReplacedKeyInvalidatesToken(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}

	// Simulate a lost key: a fresh one is generated on the next save.
	if err := os.Remove(filepath.Join(dir, keyFileName)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("other"); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load()
	if err != nil || got != "other" {
		t.Errorf("Load = %q, %v", got, err)
	}
}

// =============================================================================
// GUARD TESTS
// =============================================================================

func TestGuard_BeginEnd(t *testing.T) {
	g := NewGuard(DefaultConfig())
	if g.Authenticated() {
		t.Error("fresh guard reports authenticated")
	}

	g.Begin("alice", "tok")
	if !g.Authenticated() || g.Token() != "tok" || g.Username() != "alice" {
		t.Errorf("after Begin: token=%q user=%q", g.Token(), g.Username())
	}

	g.End()
	if g.Authenticated() || g.Token() != "" {
		t.Error("after End: still authenticated")
	}
}

func TestGuard_IdleTimeout(t *testing.T) {
	g := NewGuard(Config{
		Timeout:            30 * time.Millisecond,
		WarningBefore:      10 * time.Millisecond,
		RevalidateInterval: time.Hour,
	})
	g.Begin("alice", "tok")

	if g.IsExpired() {
		t.Fatal("expired immediately after Begin")
	}
	time.Sleep(40 * time.Millisecond)
	if !g.IsExpired() {
		t.Fatal("not expired past the timeout")
	}

	g.RecordActivity()
	if g.IsExpired() {
		t.Error("still expired after RecordActivity")
	}
}

func TestGuard_LoggedOutNeverExpires(t *testing.T) {
	g := NewGuard(Config{Timeout: time.Millisecond, WarningBefore: 0, RevalidateInterval: time.Hour})
	time.Sleep(5 * time.Millisecond)
	if g.IsExpired() {
		t.Error("logged-out guard reports expired")
	}
}

func TestGuard_ExpireInvokesCallback(t *testing.T) {
	g := NewGuard(DefaultConfig())
	g.Begin("alice", "tok")

	var gotReason string
	g.SetLogoutCallback(func(reason string) { gotReason = reason })

	g.Expire("token rejected")
	if g.Authenticated() {
		t.Error("still authenticated after Expire")
	}
	if gotReason != "token rejected" {
		t.Errorf("callback reason = %q", gotReason)
	}
}

func TestGuard_HandleTickEmitsExpiry(t *testing.T) {
	g := NewGuard(Config{
		Timeout:            5 * time.Millisecond,
		WarningBefore:      time.Millisecond,
		RevalidateInterval: time.Hour,
	})
	g.Begin("alice", "tok")
	time.Sleep(10 * time.Millisecond)

	cmd := g.HandleTick()
	if cmd == nil {
		t.Fatal("HandleTick returned nil")
	}
	if g.Authenticated() {
		t.Error("HandleTick left an expired session authenticated")
	}
}

func TestGuard_RemainingTimeFloorsAtZero(t *testing.T) {
	g := NewGuard(Config{Timeout: time.Millisecond, WarningBefore: 0, RevalidateInterval: time.Hour})
	g.Begin("alice", "tok")
	time.Sleep(5 * time.Millisecond)
	if got := g.RemainingTime(); got != 0 {
		t.Errorf("RemainingTime = %v, want 0", got)
	}
}
