// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// tableCreationQueries bootstrap the two tables the service reads.
var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS papers (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		abstract TEXT NOT NULL DEFAULT '',
		authors TEXT NOT NULL DEFAULT '',
		journal TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		published DATE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL,
		paper_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, paper_id)
	)`,
}

var indexCreationQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
	`CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(journal)`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id)`,
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	return db.execSchema(tableCreationQueries)
}

// createIndexes creates lookup indexes for the batch and journal queries
func (db *DB) createIndexes() error {
	return db.execSchema(indexCreationQueries)
}

func (db *DB) execSchema(queries []string) error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}
