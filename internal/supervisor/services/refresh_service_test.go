// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRefresher struct {
	mu      sync.Mutex
	results []refreshResult
	calls   atomic.Int32
	rows    int
}

type refreshResult struct {
	added int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) (int, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.results) == 0 {
		return 0, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	f.rows += r.added
	return r.added, r.err
}

func (f *fakeRefresher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows
}

type countingCache struct {
	invalidations atomic.Int32
}

func (c *countingCache) InvalidateCache() { c.invalidations.Add(1) }

func TestFeatureRefreshService_Refresh(t *testing.T) {
	tests := []struct {
		name             string
		result           refreshResult
		wantAdded        int
		wantInvalidation int32
	}{
		{"rows appended", refreshResult{added: 4}, 4, 1},
		{"unchanged", refreshResult{}, 0, 0},
		{"missing artifact", refreshResult{err: fmt.Errorf("open feature artifact: %w", fs.ErrNotExist)}, 0, 0},
		{"shrunk artifact", refreshResult{err: errors.New("fewer rows")}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &fakeRefresher{results: []refreshResult{tt.result}}
			cache := &countingCache{}
			svc := NewFeatureRefreshService(refresher, refresher, cache, FeatureRefreshConfig{}, quietLogger())

			if got := svc.refresh(context.Background()); got != tt.wantAdded {
				t.Errorf("refresh() = %d, want %d", got, tt.wantAdded)
			}
			if got := cache.invalidations.Load(); got != tt.wantInvalidation {
				t.Errorf("invalidations = %d, want %d", got, tt.wantInvalidation)
			}
		})
	}
}

func TestFeatureRefreshService_Defaults(t *testing.T) {
	svc := NewFeatureRefreshService(&fakeRefresher{}, &fakeRefresher{}, nil, FeatureRefreshConfig{}, quietLogger())
	if svc.config.Interval != 15*time.Minute || svc.config.Timeout != 5*time.Minute {
		t.Errorf("config = %+v", svc.config)
	}
	// A nil cache must not panic when rows arrive.
	svc.refresher = &fakeRefresher{results: []refreshResult{{added: 1}}}
	if got := svc.refresh(context.Background()); got != 1 {
		t.Errorf("refresh() = %d, want 1", got)
	}
}

func TestFeatureRefreshService_ServeTicks(t *testing.T) {
	refresher := &fakeRefresher{results: []refreshResult{{added: 2}, {added: 1}}}
	cache := &countingCache{}
	svc := NewFeatureRefreshService(refresher, refresher, cache, FeatureRefreshConfig{
		Interval:         10 * time.Millisecond,
		RefreshOnStartup: true,
	}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for refresher.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if refresher.calls.Load() < 3 {
		t.Fatalf("refresh ran %d times, want at least 3", refresher.calls.Load())
	}
	if got := cache.invalidations.Load(); got != 2 {
		t.Errorf("invalidations = %d, want 2", got)
	}
}
