// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// COLLECTION VOCABULARY
// =============================================================================

// Collections is the closed vocabulary of knowledge-base collections a chat
// space may be scoped to. The names are defined by the backend's ingestion
// pipelines and must match byte for byte.
var Collections = []string{
	"PDF Document",
	"Confluence Space",
	"Jira Project",
	"GitHub Repository",
	"GitLab Repository",
}

// ScopeAll is the literal sent in a chat request when a space has no
// explicit collection selection. An empty selection means "use all
// available collections", never "use none".
const ScopeAll = "all"

// IsKnownCollection reports whether name is part of the vocabulary.
func IsKnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
