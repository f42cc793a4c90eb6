// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/legalia/legalia-tui/internal/api"
	"github.com/legalia/legalia-tui/internal/export"
	"github.com/legalia/legalia-tui/internal/model"
	"github.com/legalia/legalia-tui/internal/progress"
	"github.com/legalia/legalia-tui/internal/util"
)

// requestTimeout bounds ordinary API requests. Chat questions get a longer
// window since retrieval plus generation can take a while.
const (
	requestTimeout = 30 * time.Second
	chatTimeout    = 3 * time.Minute
)

// =============================================================================
// CHAT COMMANDS
// =============================================================================

// sendChatCmd asks the backend the given question in the named space. The
// reply is tagged with the space name so the workspace can route it after
// renames or drop it after deletion.
func (m *Model) sendChatCmd(space, question string, scope any) tea.Cmd {
	req := api.ChatRequest{
		Question:     question,
		ModelName:    m.cfg.ActiveModel(),
		Temperature:  m.cfg.Model.Temperature,
		GroqAPIToken: m.cfg.GroqToken(),
		ChatName:     space,
		Collections:  scope,
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return replyMsg{Space: space, Err: err}
		}
		return replyMsg{
			Space: space,
			Reply: model.NewAssistantMessage(resp.Answer, resp.SourceDocuments),
		}
	}
}

// loadHistoryCmd fetches the server-side transcript for all spaces.
func (m *Model) loadHistoryCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		order, history, err := client.ChatHistory(ctx)
		return historyMsg{Order: order, History: history, Err: err}
	}
}

// =============================================================================
// SPACE MANAGEMENT COMMANDS
// =============================================================================

// renameSpaceCmd asks the backend to rename a space. The workspace applies
// the rename only after the acknowledgment arrives.
func (m *Model) renameSpaceCmd(oldName, newName string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.RenameChatSpace(ctx, oldName, newName)
		return renameAckMsg{OldName: oldName, NewName: newName, Err: err}
	}
}

// deleteSpaceCmd asks the backend to delete a space.
func (m *Model) deleteSpaceCmd(space string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.DeleteChatSpace(ctx, space)
		return deleteAckMsg{Space: space, Err: err}
	}
}

// clearHistoryCmd wipes every space server-side.
func (m *Model) clearHistoryCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return clearAckMsg{Err: client.DeleteAllChatHistory(ctx)}
	}
}

// =============================================================================
// INGESTION COMMANDS
// =============================================================================

// submitPDFCmd uploads a PDF for ingestion.
func (m *Model) submitPDFCmd(path string) tea.Cmd {
	client := m.client
	modelName := m.cfg.ActiveModel()
	temperature := m.cfg.Model.Temperature
	groq := ""
	if t := m.cfg.GroqToken(); t != nil {
		groq = *t
	}
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return ingestStartedMsg{Err: fmt.Errorf("open pdf: %w", err)}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		id, err := client.ProcessPDF(ctx, filepath.Base(path), f, modelName, temperature, groq)
		return ingestStartedMsg{
			ProcessID: id,
			Label:     "Processing " + util.TruncateRunes(filepath.Base(path), 40),
			Err:       err,
		}
	}
}

// submitIngestCmd runs one of the non-PDF ingestion requests.
func submitIngestCmd(label string, call func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()
		id, err := call(ctx)
		return ingestStartedMsg{ProcessID: id, Label: label, Err: err}
	}
}

// pollProgressCmd schedules the next progress poll for a job.
func (m *Model) pollProgressCmd(processID string) tea.Cmd {
	client := m.client
	return tea.Tick(progress.PollInterval, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		p, err := client.GetProgress(ctx, processID)
		if err != nil {
			return progressMsg{ProcessID: processID, Err: err}
		}
		return progressMsg{ProcessID: processID, Percentage: p.Percentage}
	})
}

// =============================================================================
// ACCOUNT COMMANDS
// =============================================================================

// fetchUserInfoCmd loads the account profile.
func (m *Model) fetchUserInfoCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		info, err := client.GetUserInfo(ctx)
		if err != nil {
			return userInfoMsg{Err: err}
		}
		return userInfoMsg{Info: *info}
	}
}

// saveUserInfoCmd updates the account profile.
func (m *Model) saveUserInfoCmd(info api.UserInfo) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return userInfoSavedMsg{Err: client.UpdateUserInfo(ctx, info)}
	}
}

// =============================================================================
// GENERATION AND EXPORT COMMANDS
// =============================================================================

// generateCmd produces a CSV artifact from the prompt and writes it to the
// working directory.
func (m *Model) generateCmd(kind, prompt string) tea.Cmd {
	req := api.GenerateRequest{
		Prompt:       prompt,
		ModelName:    m.cfg.ActiveModel(),
		Temperature:  m.cfg.Model.Temperature,
		GroqAPIToken: m.cfg.GroqToken(),
	}
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
		defer cancel()

		var csv []byte
		var err error
		if kind == generateKindTests {
			csv, err = client.GenerateUnitTests(ctx, req)
		} else {
			csv, err = client.GenerateAcceptanceCriteria(ctx, req)
		}
		if err != nil {
			return generateDoneMsg{Kind: kind, Err: err}
		}

		name := fmt.Sprintf("%s_%s.csv", kind, time.Now().Format("20060102_150405"))
		if err := util.AtomicWriteFile(name, csv, 0o644); err != nil {
			return generateDoneMsg{Kind: kind, Err: err}
		}
		return generateDoneMsg{Kind: kind, Path: name}
	}
}

// exportCmd writes the active space's transcript to a markdown file.
func (m *Model) exportCmd() tea.Cmd {
	space := m.workspace.Active()
	msgs := m.workspace.Messages(space)
	return func() tea.Msg {
		path, err := export.WriteFile(space, msgs, export.DefaultOptions())
		return exportDoneMsg{Path: path, Err: err}
	}
}
