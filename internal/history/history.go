// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/legalia/legalia-tui/internal/model"
)

// Schema creates the mirror tables.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	space      TEXT NOT NULL,
	role       TEXT NOT NULL,
	text       TEXT NOT NULL,
	sources    TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_space ON messages(space, created_at);
`

// Mirror is the local transcript store.
type Mirror struct {
	db *sql.DB
}

// Open opens (or creates) the mirror database at path.
func Open(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports one writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Mirror{db: db}, nil
}

// Close releases the database.
func (m *Mirror) Close() error {
	return m.db.Close()
}

// Record writes one message through to the mirror. Re-recording the same
// message id is a no-op, so replaying a fetched history is safe.
func (m *Mirror) Record(space string, msg *model.Message) error {
	_, err := m.db.Exec(`
		INSERT OR IGNORE INTO messages (id, space, role, text, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, space, string(msg.Role), msg.Text,
		strings.Join(msg.Sources, "\x1f"),
		msg.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record message: %w", err)
	}
	return nil
}

// RecordAll writes a whole transcript in one transaction.
func (m *Mirror) RecordAll(space string, msgs []*model.Message) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO messages (id, space, role, text, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range msgs {
		if _, err := stmt.Exec(
			msg.ID, space, string(msg.Role), msg.Text,
			strings.Join(msg.Sources, "\x1f"),
			msg.Timestamp.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to record message: %w", err)
		}
	}
	return tx.Commit()
}

// Rename moves a space's mirrored messages under its new name.
func (m *Mirror) Rename(oldName, newName string) error {
	_, err := m.db.Exec("UPDATE messages SET space = ? WHERE space = ?", newName, oldName)
	if err != nil {
		return fmt.Errorf("failed to rename space: %w", err)
	}
	return nil
}

// DeleteSpace drops a space's mirrored messages.
func (m *Mirror) DeleteSpace(space string) error {
	_, err := m.db.Exec("DELETE FROM messages WHERE space = ?", space)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	return nil
}

// Reset drops everything, mirroring a delete-all-history.
func (m *Mirror) Reset() error {
	_, err := m.db.Exec("DELETE FROM messages")
	if err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	return nil
}

// Spaces lists mirrored space names, ordered by each space's first
// message.
func (m *Mirror) Spaces() ([]string, error) {
	rows, err := m.db.Query(`
		SELECT space FROM messages
		GROUP BY space
		ORDER BY MIN(created_at)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	var spaces []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		spaces = append(spaces, s)
	}
	return spaces, rows.Err()
}

// Messages returns a space's mirrored transcript in order.
func (m *Mirror) Messages(space string) ([]*model.Message, error) {
	rows, err := m.db.Query(`
		SELECT id, role, text, sources, created_at
		FROM messages WHERE space = ?
		ORDER BY created_at, id`, space)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		var (
			msg     model.Message
			role    string
			sources string
			created string
		)
		if err := rows.Scan(&msg.ID, &role, &msg.Text, &sources, &created); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		msg.Role = model.Role(role)
		if sources != "" {
			msg.Sources = strings.Split(sources, "\x1f")
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			msg.Timestamp = ts
		}
		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}
