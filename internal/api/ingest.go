// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
)

// submitResponse is what every ingestion submission answers with: the job
// id to poll for progress.
type submitResponse struct {
	ProcessID string `json:"processId"`
}

// submit runs an ingestion POST and extracts the job id. A 200 without a
// process id is a fatal protocol violation, not something to poll around.
func (c *Client) submit(ctx context.Context, path string, payload any) (string, error) {
	var out submitResponse
	if err := c.postJSON(ctx, http.MethodPost, path, payload, &out); err != nil {
		return "", err
	}
	if out.ProcessID == "" {
		return "", ErrMissingJobID
	}
	return out.ProcessID, nil
}

// ProcessPDF uploads a PDF for ingestion into the "PDF Document"
// collection and returns the job id to poll. Model parameters ride along
// as form fields the way the chat request carries them.
func (c *Client) ProcessPDF(ctx context.Context, filename string, content io.Reader, modelName string, temperature float64, groqAPIToken string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	w.WriteField("model_name", modelName)
	w.WriteField("temperature", strconv.FormatFloat(temperature, 'f', -1, 64))
	w.WriteField("groq_api_token", groqAPIToken)
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/process_pdf", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp.StatusCode, body)
	}

	var out submitResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.ProcessID == "" {
		return "", ErrMissingJobID
	}
	return out.ProcessID, nil
}

// Progress is one poll result for a running ingestion job.
type Progress struct {
	Percentage float64 `json:"percentage"`
}

// GetProgress polls a running job. Callers poll on a fixed cadence and
// treat the first failed poll as fatal for the job.
func (c *Client) GetProgress(ctx context.Context, processID string) (*Progress, error) {
	var out Progress
	if err := c.getJSON(ctx, "/api/get_progress/"+url.PathEscape(processID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessConfluence ingests a Confluence space into the "Confluence Space"
// collection.
func (c *Client) ProcessConfluence(ctx context.Context, spaceURL, token string) (string, error) {
	payload := struct {
		ConfluenceSpaceURL string `json:"confluence_space_url"`
		ConfluenceToken    string `json:"confluence_token"`
	}{spaceURL, token}
	return c.submit(ctx, "/api/process_confluence", payload)
}

// ProcessJira ingests every story of a Jira project into the "Jira
// Project" collection.
func (c *Client) ProcessJira(ctx context.Context, projectKey, apiToken string) (string, error) {
	payload := struct {
		JiraProjectKey string `json:"jira_project_key"`
		JiraAPIToken   string `json:"jira_api_token"`
	}{projectKey, apiToken}
	return c.submit(ctx, "/api/process_jira", payload)
}

// ProcessJiraIssue ingests a single Jira issue.
func (c *Client) ProcessJiraIssue(ctx context.Context, projectKey, issueID, apiToken string) (string, error) {
	payload := struct {
		JiraProjectKey string `json:"jira_project_key"`
		JiraIssueID    string `json:"jira_issue_id"`
		JiraAPIToken   string `json:"jira_api_token"`
	}{projectKey, issueID, apiToken}
	return c.submit(ctx, "/api/process_jira_issue", payload)
}

// ProcessGitHub ingests a public GitHub repository into the "GitHub
// Repository" collection.
func (c *Client) ProcessGitHub(ctx context.Context, repoURL string) (string, error) {
	payload := struct {
		GitHubRepoURL string `json:"github_repo_url"`
	}{repoURL}
	return c.submit(ctx, "/api/process_github", payload)
}

// ProcessGitLab ingests a GitLab repository into the "GitLab Repository"
// collection.
func (c *Client) ProcessGitLab(ctx context.Context, repoURL, personalToken, projectToken string) (string, error) {
	payload := struct {
		GitLabRepoURL       string `json:"gitlab_repo_url"`
		GitLabPersonalToken string `json:"gitlab_personal_token"`
		GitLabProjectToken  string `json:"gitlab_project_token"`
	}{repoURL, personalToken, projectToken}
	return c.submit(ctx, "/api/process_gitlab", payload)
}
