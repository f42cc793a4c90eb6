// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/legalia/legalia-tui/internal/model"
)

// assertSynchronized fails the test when the three maps disagree on keys.
func assertSynchronized(t *testing.T, w *Workspace) {
	t.Helper()
	dir := w.Spaces()
	for _, name := range dir {
		if !w.Has(name) {
			t.Fatalf("directory entry %q missing from message store", name)
		}
	}
	if len(dir) != w.Len() {
		t.Fatalf("directory length mismatch: %d vs %d", len(dir), w.Len())
	}
	active := w.Active()
	found := false
	for _, name := range dir {
		if name == active {
			found = true
		}
	}
	if !found {
		t.Fatalf("active pointer %q not in directory %v", active, dir)
	}
}

func TestNew_DefaultSpace(t *testing.T) {
	w := New()
	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName}) {
		t.Fatalf("Spaces() = %v", got)
	}
	if w.Active() != DefaultSpaceName {
		t.Fatalf("Active() = %q", w.Active())
	}
	if msgs := w.Messages(DefaultSpaceName); len(msgs) != 0 {
		t.Fatalf("default space not empty: %d messages", len(msgs))
	}
	assertSynchronized(t, w)
}

func TestCreate_NamingAndActivation(t *testing.T) {
	w := New()
	name := w.Create()
	if name != "New Chat 2" {
		t.Errorf("Create() = %q, want %q", name, "New Chat 2")
	}
	if w.Active() != "New Chat 2" {
		t.Errorf("Active() = %q after create", w.Active())
	}
	if msgs := w.Messages("New Chat 2"); msgs == nil || len(msgs) != 0 {
		t.Errorf("new space transcript = %v, want empty", msgs)
	}
	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName, "New Chat 2"}) {
		t.Errorf("Spaces() = %v", got)
	}
	assertSynchronized(t, w)
}

func TestDelete_LastSpaceBlocked(t *testing.T) {
	w := New()
	err := w.Delete(DefaultSpaceName)
	if !errors.Is(err, ErrLastSpace) {
		t.Fatalf("Delete on singleton directory: err = %v, want ErrLastSpace", err)
	}
	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName}) {
		t.Fatalf("directory changed by blocked delete: %v", got)
	}
	assertSynchronized(t, w)
}

func TestDelete_ActiveFallsBackToFirst(t *testing.T) {
	w := New()
	w.Create() // New Chat 2, active
	if err := w.Delete("New Chat 2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if w.Active() != DefaultSpaceName {
		t.Errorf("Active() = %q, want fallback to first entry", w.Active())
	}
	if w.Has("New Chat 2") {
		t.Error("deleted space still present")
	}
	assertSynchronized(t, w)
}

func TestRename_MovesMessagesContextAndPointer(t *testing.T) {
	w := New()
	w.Append(DefaultSpaceName, model.NewUserMessage("hello"))
	w.SaveContext(DefaultSpaceName, []string{"PDF Document"})

	if err := w.Rename(DefaultSpaceName, "Contracts"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if w.Has(DefaultSpaceName) {
		t.Error("old key still present after rename")
	}
	msgs := w.Messages("Contracts")
	if len(msgs) != 1 || msgs[0].Text != "hello" {
		t.Errorf("messages not reachable under new key: %v", msgs)
	}
	if got := w.Context("Contracts"); !reflect.DeepEqual(got, []string{"PDF Document"}) {
		t.Errorf("context not reachable under new key: %v", got)
	}
	if w.Active() != "Contracts" {
		t.Errorf("active pointer = %q, want %q", w.Active(), "Contracts")
	}
	assertSynchronized(t, w)
}

func TestRename_PointerOnlyFollowsWhenActive(t *testing.T) {
	w := New()
	w.Create() // New Chat 2 active
	if err := w.Rename(DefaultSpaceName, "Archive"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if w.Active() != "New Chat 2" {
		t.Errorf("active pointer moved on rename of inactive space: %q", w.Active())
	}
}

func TestRename_KeepsDirectoryPosition(t *testing.T) {
	w := New()
	w.Create() // New Chat 2
	w.Create() // New Chat 3
	if err := w.Rename("New Chat 2", "Middle"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want := []string{DefaultSpaceName, "Middle", "New Chat 3"}
	if got := w.Spaces(); !reflect.DeepEqual(got, want) {
		t.Errorf("Spaces() = %v, want %v (rename must not reorder)", got, want)
	}
}

func TestRename_NoOps(t *testing.T) {
	w := New()
	if err := w.Rename(DefaultSpaceName, ""); err != nil {
		t.Errorf("empty new name: err = %v, want silent no-op", err)
	}
	if err := w.Rename(DefaultSpaceName, "   "); err != nil {
		t.Errorf("blank new name: err = %v, want silent no-op", err)
	}
	if err := w.Rename(DefaultSpaceName, DefaultSpaceName); err != nil {
		t.Errorf("same name: err = %v, want silent no-op", err)
	}
	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName}) {
		t.Errorf("no-op rename changed directory: %v", got)
	}
}

func TestContext_RoundTripAndSentinel(t *testing.T) {
	w := New()
	w.SaveContext(DefaultSpaceName, []string{"PDF Document", "Jira Project"})
	got := w.Context(DefaultSpaceName)
	if !reflect.DeepEqual(got, []string{"PDF Document", "Jira Project"}) {
		t.Errorf("Context = %v", got)
	}
	if scope := w.Scope(DefaultSpaceName); reflect.DeepEqual(scope, model.ScopeAll) {
		t.Error("explicit selection reported as scope-all")
	}

	w.SaveContext(DefaultSpaceName, nil)
	if got := w.Context(DefaultSpaceName); len(got) != 0 {
		t.Errorf("Context after clearing = %v, want empty", got)
	}
	if scope := w.Scope(DefaultSpaceName); scope != model.ScopeAll {
		t.Errorf("Scope = %v, want the scope-all sentinel", scope)
	}
}

func TestDeliver_FollowsRenameChain(t *testing.T) {
	w := New()
	// Response issued under the original name while two renames happen.
	if err := w.Rename(DefaultSpaceName, "First"); err != nil {
		t.Fatal(err)
	}
	if err := w.Rename("First", "Second"); err != nil {
		t.Fatal(err)
	}
	landed, ok := w.Deliver(DefaultSpaceName, model.NewAssistantMessage("late", nil))
	if !ok {
		t.Fatal("Deliver discarded a response whose space was renamed")
	}
	if landed != "Second" {
		t.Errorf("Deliver landed in %q, want %q", landed, "Second")
	}
	msgs := w.Messages("Second")
	if len(msgs) != 1 || msgs[0].Text != "late" {
		t.Errorf("messages under %q = %v", landed, msgs)
	}
}

func TestDeliver_DiscardsForDeletedSpace(t *testing.T) {
	w := New()
	w.Create() // New Chat 2
	if err := w.Delete("New Chat 2"); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Deliver("New Chat 2", model.NewAssistantMessage("late", nil)); ok {
		t.Error("Deliver routed a response to a deleted space")
	}
}

func TestReset_BackToDefault(t *testing.T) {
	w := New()
	w.Create()
	w.Append("New Chat 2", model.NewUserMessage("x"))
	w.SaveContext("New Chat 2", []string{"PDF Document"})

	w.Reset()

	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName}) {
		t.Fatalf("Spaces() after reset = %v", got)
	}
	if w.Active() != DefaultSpaceName {
		t.Errorf("Active() after reset = %q", w.Active())
	}
	if msgs := w.Messages(DefaultSpaceName); len(msgs) != 0 {
		t.Errorf("default space not empty after reset: %d messages", len(msgs))
	}
}

func TestKeySynchronization_OperationSequences(t *testing.T) {
	w := New()
	steps := []func(){
		func() { w.Create() },
		func() { w.Rename("New Chat 2", "Renamed") },
		func() { w.Create() },
		func() { w.Delete("Renamed") },
		func() { w.Create() },
		func() { w.Rename(DefaultSpaceName, "Primary") },
		func() { w.Delete("Primary") },
	}
	for _, step := range steps {
		step()
		assertSynchronized(t, w)
	}
}

func TestAppend_UnknownSpaceRejected(t *testing.T) {
	w := New()
	if ok := w.Append("nope", model.NewUserMessage("x")); ok {
		t.Error("Append created a transcript for an unknown space")
	}
}

func TestNewFromHistory(t *testing.T) {
	history := map[string][]*model.Message{
		"Work":  {model.NewUserMessage("a"), model.NewAssistantMessage("b", nil)},
		"Legal": {},
	}
	w := NewFromHistory([]string{"Work", "Legal"}, history)

	if got := w.Spaces(); !reflect.DeepEqual(got, []string{"Work", "Legal"}) {
		t.Fatalf("Spaces() = %v", got)
	}
	if w.Active() != "Work" {
		t.Errorf("Active() = %q, want first entry", w.Active())
	}
	if msgs := w.Messages("Work"); len(msgs) != 2 {
		t.Errorf("Work transcript = %d messages, want 2", len(msgs))
	}
}

func TestNewFromHistory_Empty(t *testing.T) {
	w := NewFromHistory(nil, nil)
	if got := w.Spaces(); !reflect.DeepEqual(got, []string{DefaultSpaceName}) {
		t.Fatalf("Spaces() = %v, want default bootstrap", got)
	}
}
