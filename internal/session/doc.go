// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the authenticated session: the bearer token, who
// it belongs to, and how long it may sit idle.
//
// There is no package-level auth state. The Guard is an explicit object
// handed to whoever needs it, and the API client pulls the token through
// it on every request, so a forced logout takes effect immediately.
//
// Tokens at rest are sealed with XChaCha20-Poly1305 under a per-install
// key. The key file and the sealed token both live in the user config
// directory with 0600 permissions.
package session
