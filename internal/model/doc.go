// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat client:
// messages, the collection vocabulary, and the available model presets.
//
// Messages are a tagged variant over Role. Only assistant messages carry
// source references; a backend error surfaced during a send is represented
// as an ordinary assistant message and is indistinguishable from a normal
// reply once stored.
package model
