// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/paperwise/internal/config"
	"github.com/tomtom215/paperwise/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests; concurrent CGO
// connections from many tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database with timeout protection.
// The semaphore is held until the test completes.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      MemoryPath,
		MaxMemory: "512MB",
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

// seedPapers inserts ids 1..6 over three days:
//
//	2026-10-14: 1, 2   (Nature)
//	2026-10-15: 3, 4, 5 (Physical Review, Nature Physics, Nature)
//	2026-10-16: 6      (Cell)
func seedPapers(t *testing.T, db *DB) {
	t.Helper()
	papers := []models.Paper{
		{Title: "Quantum sensing", Abstract: "A quantum sensor with 50% gain", Journal: "Nature", Published: "2026-10-14"},
		{Title: "Protein folding", Abstract: "Deep learning predicts protein structure", Journal: "Nature", Published: "2026-10-14"},
		{Title: "Spin chains", Abstract: "Quantum spin chains at low temperature", Journal: "Physical Review", Published: "2026-10-15"},
		{Title: "Topological phases", Abstract: "Topological quantum matter", Journal: "Nature Physics", Published: "2026-10-15"},
		{Title: "Coral reefs", Abstract: "Reef ecology under warming", Journal: "Nature", Published: "2026-10-15"},
		{Title: "Cell division", Abstract: "Mitosis imaging with deep learning", Journal: "Cell", Published: "2026-10-16"},
	}
	for i := range papers {
		if err := db.InsertPaper(context.Background(), &papers[i]); err != nil {
			t.Fatalf("InsertPaper(%q) error = %v", papers[i].Title, err)
		}
		if papers[i].ID != i+1 {
			t.Fatalf("InsertPaper(%q) assigned id %d, want %d", papers[i].Title, papers[i].ID, i+1)
		}
	}
}

func TestNew_CreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	for _, table := range []string{"papers", "favorites"} {
		var n int
		err := db.Conn().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&n)
		if err != nil || n != 1 {
			t.Errorf("table %s: count=%d err=%v", table, n, err)
		}
	}
	// Re-running the schema is a no-op.
	if err := db.initialize(); err != nil {
		t.Errorf("initialize() second run error = %v", err)
	}
}

func TestDailyBatchRange(t *testing.T) {
	db := setupTestDB(t)
	seedPapers(t, db)
	ctx := context.Background()

	tests := []struct {
		date    string
		wantMin int
		wantMax int
		count   int
	}{
		{"2026-10-14", 1, 2, 2},
		{"2026-10-15", 3, 5, 3},
		{"2026-10-16", 6, 6, 1},
		{"2026-10-17", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			batch, err := db.DailyBatchRange(ctx, tt.date)
			if err != nil {
				t.Fatalf("DailyBatchRange() error = %v", err)
			}
			if batch.MinID != tt.wantMin || batch.MaxID != tt.wantMax {
				t.Errorf("DailyBatchRange() = %+v, want [%d, %d]", batch, tt.wantMin, tt.wantMax)
			}
			if batch.Len() != tt.count {
				t.Errorf("Len() = %d, want %d", batch.Len(), tt.count)
			}
			count, err := db.CountByDate(ctx, tt.date)
			if err != nil || count != tt.count {
				t.Errorf("CountByDate() = %d, %v; want %d", count, err, tt.count)
			}
		})
	}
}

func TestDailyBatchRange_InvalidDate(t *testing.T) {
	db := setupTestDB(t)
	for _, date := range []string{"", "yesterday", "2026-13-01", "16/10/2026"} {
		if _, err := db.DailyBatchRange(context.Background(), date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("DailyBatchRange(%q) error = %v, want ErrInvalidDate", date, err)
		}
		if _, err := db.CountByDate(context.Background(), date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("CountByDate(%q) error = %v, want ErrInvalidDate", date, err)
		}
	}
}

func TestGetPaper(t *testing.T) {
	db := setupTestDB(t)
	seedPapers(t, db)

	p, err := db.GetPaper(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetPaper(3) error = %v", err)
	}
	if p.Title != "Spin chains" || p.Journal != "Physical Review" || p.Published != "2026-10-15" {
		t.Errorf("GetPaper(3) = %+v", p)
	}

	if _, err := db.GetPaper(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPaper(99) error = %v, want ErrNotFound", err)
	}
}

func TestGetPapers_KeepsRequestOrder(t *testing.T) {
	db := setupTestDB(t)
	seedPapers(t, db)

	papers, err := db.GetPapers(context.Background(), []int{5, 99, 1, 5, 3})
	if err != nil {
		t.Fatalf("GetPapers() error = %v", err)
	}
	got := make([]int, len(papers))
	for i, p := range papers {
		got[i] = p.ID
	}
	want := []int{5, 1, 3}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("GetPapers() ids = %v, want %v", got, want)
	}

	empty, err := db.GetPapers(context.Background(), nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("GetPapers(nil) = %v, %v; want empty non-nil", empty, err)
	}
}

func TestInsertPaper(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	explicit := models.Paper{ID: 10, Title: "Explicit", Published: "2026-10-01"}
	if err := db.InsertPaper(ctx, &explicit); err != nil {
		t.Fatalf("InsertPaper(explicit) error = %v", err)
	}
	next := models.Paper{Title: "Next", Published: "2026-10-01"}
	if err := db.InsertPaper(ctx, &next); err != nil {
		t.Fatalf("InsertPaper(next) error = %v", err)
	}
	if next.ID != 11 {
		t.Errorf("assigned id = %d, want 11", next.ID)
	}

	dup := models.Paper{ID: 10, Title: "Duplicate", Published: "2026-10-01"}
	if err := db.InsertPaper(ctx, &dup); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate InsertPaper() error = %v, want ErrConflict", err)
	}

	invalid := []models.Paper{
		{Title: "", Published: "2026-10-01"},
		{Title: "No date"},
		{Title: "Bad date", Published: "10/01/2026"},
		{ID: -1, Title: "Negative", Published: "2026-10-01"},
	}
	for _, p := range invalid {
		if err := db.InsertPaper(ctx, &p); err == nil {
			t.Errorf("InsertPaper(%+v) error = nil", p)
		}
	}

	count, err := db.PaperCount(ctx)
	if err != nil || count != 2 {
		t.Errorf("PaperCount() = %d, %v; want 2", count, err)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("sql: database is closed"), true},
		{errors.New("driver: bad connection"), true},
		{errors.New("Binder Error: column not found"), false},
	}
	for _, tt := range tests {
		if got := isConnectionError(tt.err); got != tt.want {
			t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestWithConflictRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := withConflictRetry(ctx, func() error {
		calls++
		if calls < 3 {
			return errors.New("TransactionContext Error: Transaction conflict: cannot update")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retry succeeded after %d calls, err = %v", calls, err)
	}

	calls = 0
	permanent := errors.New("Constraint Error")
	err = withConflictRetry(ctx, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("non-conflict error retried %d times, err = %v", calls, err)
	}

	calls = 0
	err = withConflictRetry(ctx, func() error {
		calls++
		return errors.New("Transaction conflict")
	})
	if err == nil || calls != maxConflictRetries {
		t.Errorf("persistent conflict: calls = %d, err = %v", calls, err)
	}
}
