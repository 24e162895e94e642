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
)

// SearchQuery is a parsed keyword search.
type SearchQuery struct {
	Date    string
	From    string
	To      string
	Journal string
	Terms   []string
}

// ParseSearchQuery splits raw into filters and abstract terms. Terms are
// lowercased; a repeated filter keeps its last value.
func ParseSearchQuery(raw string) (SearchQuery, error) {
	var q SearchQuery
	for _, word := range strings.Fields(raw) {
		key, value, found := strings.Cut(word, ":")
		if !found {
			q.Terms = append(q.Terms, strings.ToLower(word))
			continue
		}

		var target *string
		switch strings.ToLower(key) {
		case "date":
			target = &q.Date
		case "from":
			target = &q.From
		case "to":
			target = &q.To
		case "journal":
			target = &q.Journal
		default:
			q.Terms = append(q.Terms, strings.ToLower(word))
			continue
		}

		if value == "" {
			return SearchQuery{}, fmt.Errorf("%w: %s: needs a value", ErrInvalidQuery, key)
		}
		if target != &q.Journal {
			if err := checkDate(value); err != nil {
				return SearchQuery{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
			}
		}
		*target = value
	}

	if q.From != "" && q.To != "" && q.From > q.To {
		return SearchQuery{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidQuery, q.From, q.To)
	}
	return q, nil
}

// Empty reports whether the query has no filters and no terms.
func (q SearchQuery) Empty() bool {
	return q.Date == "" && q.From == "" && q.To == "" && q.Journal == "" && len(q.Terms) == 0
}

// where builds the WHERE conditions and their arguments, filters first.
func (q SearchQuery) where() (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if q.Date != "" {
		conditions = append(conditions, "published = CAST(? AS DATE)")
		args = append(args, q.Date)
	}
	if q.From != "" {
		conditions = append(conditions, "published >= CAST(? AS DATE)")
		args = append(args, q.From)
	}
	if q.To != "" {
		conditions = append(conditions, "published <= CAST(? AS DATE)")
		args = append(args, q.To)
	}
	if q.Journal != "" {
		conditions = append(conditions, "lower(journal) = lower(?)")
		args = append(args, q.Journal)
	}
	for _, term := range q.Terms {
		conditions = append(conditions, `abstract ILIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(term))
	}
	return strings.Join(conditions, " AND "), args
}

// SearchPapers returns the ids matching q, newest first, at most limit.
// An empty query matches nothing.
func (db *DB) SearchPapers(ctx context.Context, q SearchQuery, limit int) (ids []int, err error) {
	if q.Empty() {
		return []int{}, nil
	}
	where, args := q.where()
	return db.queryIDs(ctx, "search papers",
		`SELECT id FROM papers WHERE `+where+` ORDER BY id DESC`+limitClause(limit), args...)
}

// PapersByJournal returns the ids of one journal's papers, newest first.
func (db *DB) PapersByJournal(ctx context.Context, journal string, limit int) ([]int, error) {
	if strings.TrimSpace(journal) == "" {
		return []int{}, nil
	}
	return db.queryIDs(ctx, "list journal papers",
		`SELECT id FROM papers WHERE journal = ? ORDER BY id DESC`+limitClause(limit), journal)
}

// SearchJournals returns the distinct journal names containing every term,
// case-insensitively, in name order.
func (db *DB) SearchJournals(ctx context.Context, terms []string) (journals []string, err error) {
	conditions := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term == "" {
			continue
		}
		conditions = append(conditions, `journal ILIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(term))
	}
	if len(conditions) == 0 {
		return []string{}, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT journal FROM papers WHERE `+strings.Join(conditions, " AND ")+` ORDER BY journal`,
		args...)
	if err != nil {
		return nil, db.queryError("search journals", err)
	}
	defer db.closeWithLog(rows, "rows")

	journals = []string{}
	for rows.Next() {
		var j string
		if scanErr := rows.Scan(&j); scanErr != nil {
			return nil, db.queryError("scan journal", scanErr)
		}
		journals = append(journals, j)
	}
	if err = rows.Err(); err != nil {
		return nil, db.queryError("iterate journals", err)
	}
	return journals, nil
}

func (db *DB) queryIDs(ctx context.Context, operation, query string, args ...interface{}) (ids []int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("SELECT", "papers", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.queryError(operation, err)
	}
	defer db.closeWithLog(rows, "rows")

	ids = []int{}
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, db.queryError(operation, scanErr)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, db.queryError(operation, err)
	}
	return ids, nil
}

// limitClause renders a LIMIT for positive limits.
func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}
