// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GenerateRequest is the payload for the CSV generation endpoints. The
// backend runs the prompt against the ingested GitLab or Jira collection
// and streams a CSV back instead of a chat answer.
type GenerateRequest struct {
	Prompt       string  `json:"prompt"`
	ModelName    string  `json:"model_name"`
	Temperature  float64 `json:"temperature"`
	GroqAPIToken *string `json:"groq_api_token"`
}

// GenerateUnitTests asks for unit tests derived from the ingested GitLab
// repository and returns the raw CSV.
func (c *Client) GenerateUnitTests(ctx context.Context, req GenerateRequest) ([]byte, error) {
	return c.generateCSV(ctx, "/api/generate_unit_tests", req)
}

// GenerateAcceptanceCriteria asks for acceptance criteria derived from the
// ingested Jira project and returns the raw CSV.
func (c *Client) GenerateAcceptanceCriteria(ctx context.Context, req GenerateRequest) ([]byte, error) {
	return c.generateCSV(ctx, "/api/generate_acceptance_criteria", req)
}

// generateCSV posts a generation prompt and returns the CSV body. Errors
// come back as JSON even on these endpoints, so non-200 goes through the
// usual error extraction.
func (c *Client) generateCSV(ctx context.Context, path string, in GenerateRequest) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/csv")

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}
