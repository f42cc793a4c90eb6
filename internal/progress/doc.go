// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package progress tracks asynchronous ingestion jobs.
//
// One job runs at a time. A job is submitted, its process id starts the
// polling loop, and each poll either advances the percentage or kills the
// job: the first failed poll aborts, there is no retry. Reaching 100%
// holds the overlay briefly so the user sees completion before the
// tracker returns to idle.
//
// The tracker never sleeps on its own. Time comes from an injectable
// clock and ticks come from the UI loop, so tests drive the whole state
// machine synchronously.
package progress
