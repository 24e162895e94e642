// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/paperwise/internal/models"
)

func checkUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// ListFavorites returns a user's favorite paper ids, oldest first.
func (db *DB) ListFavorites(ctx context.Context, userID string) (ids []int, err error) {
	favs, err := db.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids = make([]int, len(favs))
	for i, f := range favs {
		ids[i] = f.PaperID
	}
	return ids, nil
}

// Favorites returns a user's favorites with their timestamps, oldest first.
func (db *DB) Favorites(ctx context.Context, userID string) (favs []models.Favorite, err error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "favorites", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, paper_id, created_at FROM favorites
		WHERE user_id = ? ORDER BY created_at, paper_id`, userID)
	if err != nil {
		return nil, db.queryError("list favorites", err)
	}
	defer db.closeWithLog(rows, "rows")

	favs = []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if scanErr := rows.Scan(&f.UserID, &f.PaperID, &f.CreatedAt); scanErr != nil {
			return nil, db.queryError("scan favorite", scanErr)
		}
		favs = append(favs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, db.queryError("iterate favorites", err)
	}
	return favs, nil
}

// AddFavorite saves paperID for userID. It reports false when the paper was
// already a favorite, and returns ErrNotFound for unknown papers.
func (db *DB) AddFavorite(ctx context.Context, userID string, paperID int) (added bool, err error) {
	if err := checkUserID(userID); err != nil {
		return false, err
	}
	if _, err := db.GetPaper(ctx, paperID); err != nil {
		return false, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("INSERT", "favorites", start, err) }()

	err = withConflictRetry(ctx, func() error {
		res, execErr := db.conn.ExecContext(ctx,
			`INSERT INTO favorites (user_id, paper_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`,
			userID, paperID, time.Now().UTC())
		if execErr != nil {
			return execErr
		}
		n, execErr := res.RowsAffected()
		if execErr != nil {
			return execErr
		}
		added = n > 0
		return nil
	})
	if err != nil {
		return false, db.queryError("add favorite", err)
	}
	return added, nil
}

// RemoveFavorite deletes a favorite, returning ErrNotFound when it did not exist.
func (db *DB) RemoveFavorite(ctx context.Context, userID string, paperID int) (err error) {
	if err := checkUserID(userID); err != nil {
		return err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("DELETE", "favorites", start, err) }()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND paper_id = ?`, userID, paperID)
	if err != nil {
		return db.queryError("remove favorite", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return db.queryError("remove favorite", err)
	}
	if n == 0 {
		return fmt.Errorf("favorite %d for user %s: %w", paperID, userID, ErrNotFound)
	}
	return nil
}

// IsFavorite reports whether userID saved paperID.
func (db *DB) IsFavorite(ctx context.Context, userID string, paperID int) (ok bool, err error) {
	if err := checkUserID(userID); err != nil {
		return false, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "favorites", start, err) }()

	var count int
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND paper_id = ?`, userID, paperID,
	).Scan(&count)
	if err != nil {
		return false, db.queryError("check favorite", err)
	}
	return count > 0, nil
}
