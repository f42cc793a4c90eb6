// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// LEGALIA client.
//
// Configuration lives in TOML at ~/.legalia/config.toml, with sensible
// defaults, environment variable overrides, and validation.
package config
