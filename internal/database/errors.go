// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package database

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when a paper or favorite does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidQuery is returned for malformed search filters.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrConflict is returned when inserting a paper id that already exists.
	ErrConflict = errors.New("already exists")
)

// queryError wraps a failed query, logging lost connections.
func (db *DB) queryError(operation string, err error) error {
	if isConnectionError(err) {
		db.logger.Error().Err(err).Str("operation", operation).Msg("Database connection lost")
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "primary key constraint")
}

// closeWithLog closes a resource and logs any error
func (db *DB) closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		db.logger.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource in an error path where the close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
