// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/validation"
)

// paperColumns is the select list scanned by scanPaper.
const paperColumns = `id, title, abstract, authors, journal, link, CAST(published AS VARCHAR)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*models.Paper, error) {
	var p models.Paper
	if err := row.Scan(&p.ID, &p.Title, &p.Abstract, &p.Authors, &p.Journal, &p.Link, &p.Published); err != nil {
		return nil, err
	}
	return &p, nil
}

func checkDate(date string) error {
	if !validation.IsISODate(date) {
		return fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, date)
	}
	return nil
}

// DailyBatchRange returns the id range of papers published on date. A day
// with no papers yields the zero BatchRange.
func (db *DB) DailyBatchRange(ctx context.Context, date string) (batch models.BatchRange, err error) {
	if err := checkDate(date); err != nil {
		return models.BatchRange{}, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	var minID, maxID sql.NullInt64
	err = db.conn.QueryRowContext(ctx,
		`SELECT MIN(id), MAX(id) FROM papers WHERE published = CAST(? AS DATE)`, date,
	).Scan(&minID, &maxID)
	if err != nil {
		return models.BatchRange{}, db.queryError("query daily batch range", err)
	}
	if !minID.Valid || !maxID.Valid {
		return models.BatchRange{}, nil
	}
	return models.BatchRange{MinID: int(minID.Int64), MaxID: int(maxID.Int64)}, nil
}

// CountByDate returns how many papers were published on date.
func (db *DB) CountByDate(ctx context.Context, date string) (count int, err error) {
	if err := checkDate(date); err != nil {
		return 0, err
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM papers WHERE published = CAST(? AS DATE)`, date,
	).Scan(&count)
	if err != nil {
		return 0, db.queryError("count papers by date", err)
	}
	return count, nil
}

// GetPaper returns one paper or ErrNotFound.
func (db *DB) GetPaper(ctx context.Context, id int) (paper *models.Paper, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	paper, err = scanPaper(db.conn.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("paper %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, db.queryError("get paper", err)
	}
	return paper, nil
}

// GetPapers returns the papers for ids in the order given. Unknown ids are
// skipped; duplicates are returned once.
func (db *DB) GetPapers(ctx context.Context, ids []int) (papers []models.Paper, err error) {
	if len(ids) == 0 {
		return []models.Paper{}, nil
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	placeholders, args := buildInClause(ids)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, db.queryError("get papers", err)
	}
	defer db.closeWithLog(rows, "rows")

	byID := make(map[int]models.Paper, len(ids))
	for rows.Next() {
		p, scanErr := scanPaper(rows)
		if scanErr != nil {
			return nil, db.queryError("scan paper", scanErr)
		}
		byID[p.ID] = *p
	}
	if err = rows.Err(); err != nil {
		return nil, db.queryError("iterate papers", err)
	}

	papers = make([]models.Paper, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			papers = append(papers, p)
			delete(byID, id)
		}
	}
	return papers, nil
}

// InsertPaper stores a paper. A zero ID is assigned the next free id, which
// keeps ids dense; the assigned id is written back to p.
func (db *DB) InsertPaper(ctx context.Context, p *models.Paper) (err error) {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("paper title is required")
	}
	if err := checkDate(p.Published); err != nil {
		return err
	}
	if p.ID < 0 {
		return fmt.Errorf("paper id must be positive, got %d", p.ID)
	}
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("INSERT", "papers", start, err) }()

	return withConflictRetry(ctx, func() error {
		return db.insertPaper(ctx, p)
	})
}

func (db *DB) insertPaper(ctx context.Context, p *models.Paper) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return db.queryError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := p.ID
	if id == 0 {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM papers`).Scan(&id); err != nil {
			return db.queryError("allocate paper id", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO papers (id, title, abstract, authors, journal, link, published)
		VALUES (?, ?, ?, ?, ?, ?, CAST(? AS DATE))`,
		id, p.Title, p.Abstract, p.Authors, p.Journal, p.Link, p.Published)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("paper %d: %w", id, ErrConflict)
		}
		return db.queryError("insert paper", err)
	}
	if err := tx.Commit(); err != nil {
		return db.queryError("commit paper", err)
	}
	p.ID = id
	return nil
}

// PaperCount returns the number of stored papers.
func (db *DB) PaperCount(ctx context.Context) (count int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&count); err != nil {
		return 0, db.queryError("count papers", err)
	}
	return count, nil
}
