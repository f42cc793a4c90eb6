// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the legalia client:
// width-aware string truncation for terminal rendering and atomic file
// writes for state that must never be left half-written (token, config).
package util
