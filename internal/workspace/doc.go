// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace owns the client-side chat state: the ordered directory
// of chat spaces, the per-space message transcripts, the per-space context
// selections, and the single active-space pointer.
//
// The three maps are keyed by space name (the name IS the identifier) and
// must stay key-synchronized through every create, rename, and delete.
// Rename and delete mutate all three as one synchronous unit so no observer
// can see a mismatched key set.
package workspace
