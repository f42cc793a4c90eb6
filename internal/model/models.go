// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// MODEL PRESETS
// =============================================================================

// Provider identifies which inference backend answers a chat request.
// The choice is carried on every request; the backend does the actual work.
type Provider string

const (
	// ProviderLocal routes to the backend's local Ollama models.
	ProviderLocal Provider = "local"

	// ProviderGroq routes to Groq's hosted models and requires an API token.
	ProviderGroq Provider = "groq"
)

// LocalModels are the model identifiers accepted for the local provider.
var LocalModels = []string{
	"llama3",
	"gemma2:9b",
	"codegemma:7b",
}

// GroqModels are the model identifiers accepted for the Groq provider.
var GroqModels = []string{
	"llama3-8b-8192",
	"llama-3.1-8b-instant",
	"gemma2-9b-it",
	"mixtral-8x7b-32768",
}

// DefaultLocalModel is used until the user picks one.
const DefaultLocalModel = "llama3"

// DefaultGroqModel is used until the user picks one.
const DefaultGroqModel = "llama3-8b-8192"

// DefaultTemperature is the initial sampling temperature.
const DefaultTemperature = 0.7

// ModelsFor returns the selectable model identifiers for a provider.
func ModelsFor(p Provider) []string {
	if p == ProviderGroq {
		return GroqModels
	}
	return LocalModels
}

// ValidModel reports whether name is selectable under provider p.
func ValidModel(p Provider, name string) bool {
	for _, m := range ModelsFor(p) {
		if m == name {
			return true
		}
	}
	return false
}
