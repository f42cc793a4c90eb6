// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// RenameChatSpace renames a chat space server-side. Callers apply the local
// rename only after this returns nil.
func (c *Client) RenameChatSpace(ctx context.Context, oldName, newName string) error {
	payload := struct {
		OldName string `json:"old_name"`
		NewName string `json:"new_name"`
	}{oldName, newName}
	return c.postAck(ctx, "/api/rename_chat_space", payload)
}

// DeleteChatSpace deletes a chat space server-side. The backend refuses to
// delete the last remaining space; that refusal arrives as an *APIError
// carrying the backend's error string.
func (c *Client) DeleteChatSpace(ctx context.Context, name string) error {
	payload := struct {
		ChatName string `json:"chat_name"`
	}{name}
	return c.postAck(ctx, "/api/delete_chat_space", payload)
}

// DeleteAllChatHistory wipes every space server-side, leaving the backend
// with a fresh default space.
func (c *Client) DeleteAllChatHistory(ctx context.Context) error {
	return c.postAck(ctx, "/api/delete_all_chat_history", nil)
}
