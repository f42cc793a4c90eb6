// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/legalia/legalia-tui/internal/model"
)

// DefaultSpaceName is the space created when no history exists yet and the
// space everything collapses back to after a full history wipe.
const DefaultSpaceName = "Default Chat"

// Error variables for directory operations.
var (
	// ErrLastSpace is returned when deleting the only remaining space.
	ErrLastSpace = errors.New("cannot delete the only chat space")

	// ErrUnknownSpace is returned when an operation names a space that is
	// not in the directory.
	ErrUnknownSpace = errors.New("unknown chat space")
)

// =============================================================================
// WORKSPACE
// =============================================================================

// Workspace holds the chat-space directory, the message store, the context
// map, and the active pointer. All mutations run under one mutex; the three
// maps never diverge in key set.
type Workspace struct {
	mu sync.Mutex

	// order is the directory: insertion-ordered space names. Rename
	// replaces the name in place, it never moves the entry.
	order []string

	// messages and contexts are keyed identically to order. A context
	// entry may be an empty (nil) slice: that is the scope-all sentinel,
	// not an error state.
	messages map[string][]*model.Message
	contexts map[string][]string

	// active always names an entry of order while order is non-empty.
	active string

	// aliases records rename chains (old name -> current name) so a
	// response issued against a name that was renamed mid-flight can still
	// find its transcript. Deleting a space drops every alias that
	// resolves to it.
	aliases map[string]string
}

// New creates a workspace holding the single default space.
func New() *Workspace {
	w := &Workspace{
		messages: make(map[string][]*model.Message),
		contexts: make(map[string][]string),
		aliases:  make(map[string]string),
	}
	w.addLocked(DefaultSpaceName)
	w.active = DefaultSpaceName
	return w
}

// NewFromHistory creates a workspace from a backend chat-history payload.
// Space order follows the order given; the first space becomes active.
// An empty history behaves like New.
func NewFromHistory(order []string, history map[string][]*model.Message) *Workspace {
	w := &Workspace{
		messages: make(map[string][]*model.Message),
		contexts: make(map[string][]string),
		aliases:  make(map[string]string),
	}
	for _, name := range order {
		name = normalize(name)
		if _, ok := w.messages[name]; ok {
			continue
		}
		w.addLocked(name)
		if msgs, ok := history[name]; ok {
			w.messages[name] = append(w.messages[name], msgs...)
		}
	}
	if len(w.order) == 0 {
		w.addLocked(DefaultSpaceName)
	}
	w.active = w.order[0]
	return w
}

// addLocked appends a space with empty transcript and default context.
// Caller holds the lock (or is a constructor).
func (w *Workspace) addLocked(name string) {
	w.order = append(w.order, name)
	w.messages[name] = []*model.Message{}
	w.contexts[name] = nil
}

// normalize folds a space name to NFC so two visually identical names can
// never occupy distinct keys.
func normalize(name string) string {
	return norm.NFC.String(name)
}

// =============================================================================
// DIRECTORY
// =============================================================================

// Spaces returns the directory in insertion order.
func (w *Workspace) Spaces() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// Len returns the number of spaces.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.order)
}

// Has reports whether name is in the directory.
func (w *Workspace) Has(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.messages[normalize(name)]
	return ok
}

// Active returns the active space name.
func (w *Workspace) Active() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SetActive points the active pointer at name. Unknown names are ignored so
// a stale UI event cannot detach the pointer from the directory.
func (w *Workspace) SetActive(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	name = normalize(name)
	if _, ok := w.messages[name]; ok {
		w.active = name
	}
}

// Create appends a new space named "New Chat N", where N is the directory
// size plus one, and makes it active. The counter is position-derived and is
// not re-validated against existing custom names; a user who renamed a space
// to "New Chat 2" can end up with a colliding suggestion, in which case the
// existing space simply becomes active again.
func (w *Workspace) Create() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := "New Chat " + strconv.Itoa(len(w.order)+1)
	if _, exists := w.messages[name]; !exists {
		w.addLocked(name)
	}
	w.active = name
	return name
}

// Rename replaces oldName with newName across the directory, the message
// store, and the context map as one unit. It is a silent no-op when newName
// is empty (after trimming) or equal to oldName. The active pointer follows
// the rename. Callers are expected to have the backend's acknowledgment in
// hand before calling; this mutation is local only.
func (w *Workspace) Rename(oldName, newName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	oldName = normalize(oldName)
	newName = normalize(strings.TrimSpace(newName))
	if newName == "" || newName == oldName {
		return nil
	}
	if _, ok := w.messages[oldName]; !ok {
		return ErrUnknownSpace
	}

	for i, name := range w.order {
		if name == oldName {
			w.order[i] = newName
			break
		}
	}
	w.messages[newName] = w.messages[oldName]
	delete(w.messages, oldName)
	w.contexts[newName] = w.contexts[oldName]
	delete(w.contexts, oldName)
	if w.active == oldName {
		w.active = newName
	}

	// Re-point any chain ending at oldName, then record the new hop.
	for from, to := range w.aliases {
		if to == oldName {
			w.aliases[from] = newName
		}
	}
	w.aliases[oldName] = newName
	return nil
}

// Delete removes name from all three maps. Deleting the last remaining
// space fails with ErrLastSpace and changes nothing. When the deleted space
// was active, the pointer falls back to the directory's first entry.
func (w *Workspace) Delete(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = normalize(name)
	if _, ok := w.messages[name]; !ok {
		return ErrUnknownSpace
	}
	if len(w.order) <= 1 {
		return ErrLastSpace
	}

	for i, n := range w.order {
		if n == name {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	delete(w.messages, name)
	delete(w.contexts, name)
	for from, to := range w.aliases {
		if to == name {
			delete(w.aliases, from)
		}
	}
	delete(w.aliases, name)
	if w.active == name {
		w.active = w.order[0]
	}
	return nil
}

// Reset wipes everything back to a single empty default space, matching the
// backend's delete-all-chat-history behavior.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.order = nil
	w.messages = make(map[string][]*model.Message)
	w.contexts = make(map[string][]string)
	w.aliases = make(map[string]string)
	w.addLocked(DefaultSpaceName)
	w.active = DefaultSpaceName
}

// =============================================================================
// MESSAGES
// =============================================================================

// Messages returns the transcript for name, or nil for unknown spaces.
func (w *Workspace) Messages(name string) []*model.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	msgs, ok := w.messages[normalize(name)]
	if !ok {
		return nil
	}
	out := make([]*model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Append adds msg to the end of name's transcript. Returns false when the
// space does not exist; messages are never created into a missing slot.
func (w *Workspace) Append(name string, msg *model.Message) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	name = normalize(name)
	if _, ok := w.messages[name]; !ok {
		return false
	}
	w.messages[name] = append(w.messages[name], msg)
	return true
}

// Deliver routes a response message issued against name, following rename
// aliases recorded since the request went out. Returns the space the message
// landed in, or false when the space was deleted mid-flight and the message
// was discarded.
func (w *Workspace) Deliver(name string, msg *model.Message) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = normalize(name)
	if current, ok := w.aliases[name]; ok {
		name = current
	}
	if _, ok := w.messages[name]; !ok {
		return "", false
	}
	w.messages[name] = append(w.messages[name], msg)
	return name, true
}

// =============================================================================
// CONTEXT SELECTIONS
// =============================================================================

// Context returns the explicit collection selection for name. A nil/empty
// result is the scope-all sentinel.
func (w *Workspace) Context(name string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	sel := w.contexts[normalize(name)]
	out := make([]string, len(sel))
	copy(out, sel)
	return out
}

// SaveContext stores selection for name. Purely local, never rejected; an
// empty selection restores the scope-all default. Unknown spaces are
// ignored.
func (w *Workspace) SaveContext(name string, selection []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	name = normalize(name)
	if _, ok := w.messages[name]; !ok {
		return
	}
	if len(selection) == 0 {
		w.contexts[name] = nil
		return
	}
	sel := make([]string, len(selection))
	copy(sel, selection)
	w.contexts[name] = sel
}

// Scope returns the collection scope to send with a chat request for name:
// the explicit selection, or the literal scope-all sentinel when none is
// set.
func (w *Workspace) Scope(name string) any {
	sel := w.Context(name)
	if len(sel) == 0 {
		return model.ScopeAll
	}
	return sel
}
