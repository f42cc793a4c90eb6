// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Knowledge-base table names. These are the only two tables the backend
// serves; anything else is rejected server-side.
const (
	TableCollections = "langchain_pg_collection"
	TableEmbeddings  = "langchain_pg_embedding"
)

// CollectionRow is one row of the collections table: a named vector-store
// collection.
type CollectionRow struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// EmbeddingRow is one row of the embeddings table: a stored document chunk
// and the collection it belongs to.
type EmbeddingRow struct {
	CollectionID string `json:"collection_id"`
	Document     string `json:"document"`
	UUID         string `json:"uuid"`
}

// KBCollections lists the authenticated user's vector-store collections.
func (c *Client) KBCollections(ctx context.Context) ([]CollectionRow, error) {
	var rows []CollectionRow
	if err := c.getJSON(ctx, "/api/knowledge_base/"+TableCollections, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// KBEmbeddings lists the authenticated user's stored document chunks.
func (c *Client) KBEmbeddings(ctx context.Context) ([]EmbeddingRow, error) {
	var rows []EmbeddingRow
	if err := c.getJSON(ctx, "/api/knowledge_base/"+TableEmbeddings, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// KBDelete removes one row from a knowledge-base table by uuid.
func (c *Client) KBDelete(ctx context.Context, table, uuid string) error {
	if table != TableCollections && table != TableEmbeddings {
		return fmt.Errorf("unknown knowledge-base table %q", table)
	}
	payload := struct {
		Table string `json:"table"`
		UUID  string `json:"uuid"`
	}{table, uuid}
	return c.postJSON(ctx, http.MethodPost, "/api/knowledge_base/delete", payload, nil)
}
