// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history mirrors chat transcripts into a local SQLite database.
//
// The backend owns the truth; this mirror exists so transcripts can be
// exported and re-read when the backend is unreachable. Writes go through
// on every fetched or sent message; the read path serves export and the
// chat view's offline restore.
package history
