// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the LEGALIA backend.
//
// The backend is an opaque collaborator: all retrieval, language-model
// invocation, and persistence happen server-side. This package covers the
// full /api surface: chat, chat-space management, authentication, user
// info, document ingestion with progress polling, unit-test / acceptance-
// criteria generation, and the knowledge-base tables.
//
// Requests are never retried. A failed call surfaces immediately as either
// a transport error or an *APIError carrying the backend's error string;
// the caller decides how to absorb it (toast, banner, or a synthetic chat
// reply). Outbound requests are paced through a shared rate limiter so a
// polling loop cannot starve an interactive request.
package api
