// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/paperwise/internal/database"
	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/recommend"
)

type fakeEngine struct {
	mu        sync.Mutex
	similar   []recommend.ScoredPaper
	daily     []int
	clustered bool
	cacheHit  bool
	err       error
	lastDaily recommend.DailyRequest
	lastTopN  int
}

func (f *fakeEngine) Similar(_ context.Context, paperID, topN int) ([]recommend.ScoredPaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTopN = topN
	if f.err != nil {
		return nil, f.err
	}
	if paperID > 100 {
		return nil, fmt.Errorf("paper %d: %w", paperID, features.ErrOutOfRange)
	}
	return f.similar, nil
}

//nolint:gocritic // hugeParam: matches Recommender
func (f *fakeEngine) Daily(_ context.Context, req recommend.DailyRequest) (*recommend.DailyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDaily = req
	if f.err != nil {
		return nil, f.err
	}
	ids := []int{}
	if len(req.FavoriteIDs) > 0 && !req.Batch.Empty() {
		ids = f.daily
	}
	resp := &recommend.DailyResponse{PaperIDs: ids}
	resp.Metadata.CacheHit = f.cacheHit
	if f.clustered {
		resp.Clustering = recommend.ClusterSummary{Clustered: true, K: 2, Silhouette: 0.42}
	}
	return resp, nil
}

func (f *fakeEngine) Metrics() recommend.Metrics {
	return recommend.Metrics{DailyRequests: 7, CacheHits: 3}
}

func (f *fakeEngine) lastRequest() recommend.DailyRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastDaily
}

type fakeStore struct {
	mu        sync.Mutex
	pingErr   error
	papers    map[int]models.Paper
	batches   map[string]models.BatchRange
	favorites map[string][]int
	lastQuery database.SearchQuery
	lastLimit int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		papers: map[int]models.Paper{
			1: {ID: 1, Title: "Quantum sensing", Journal: "Nature", Published: "2026-10-14"},
			2: {ID: 2, Title: "Protein folding", Journal: "Nature", Published: "2026-10-14"},
			3: {ID: 3, Title: "Spin chains", Journal: "Physical Review", Published: "2026-10-15"},
			4: {ID: 4, Title: "Topological matter", Journal: "Nature Physics", Published: "2026-10-15"},
			5: {ID: 5, Title: "Reef ecology", Journal: "Nature", Published: "2026-10-15"},
			6: {ID: 6, Title: "Mitosis imaging", Journal: "Cell", Published: "2026-10-16"},
		},
		batches: map[string]models.BatchRange{
			"2026-10-14": {MinID: 1, MaxID: 2},
			"2026-10-15": {MinID: 3, MaxID: 5},
			"2026-10-16": {MinID: 6, MaxID: 6},
		},
		favorites: map[string][]int{"alice": {1, 2}},
	}
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) DailyBatchRange(_ context.Context, date string) (models.BatchRange, error) {
	return s.batches[date], nil
}

func (s *fakeStore) CountByDate(_ context.Context, date string) (int, error) {
	return s.batches[date].Len(), nil
}

func (s *fakeStore) GetPaper(_ context.Context, id int) (*models.Paper, error) {
	p, ok := s.papers[id]
	if !ok {
		return nil, fmt.Errorf("paper %d: %w", id, database.ErrNotFound)
	}
	return &p, nil
}

func (s *fakeStore) GetPapers(_ context.Context, ids []int) ([]models.Paper, error) {
	out := []models.Paper{}
	for _, id := range ids {
		if p, ok := s.papers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) ListFavorites(_ context.Context, userID string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int{}, s.favorites[userID]...), nil
}

func (s *fakeStore) AddFavorite(_ context.Context, userID string, paperID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.papers[paperID]; !ok {
		return false, fmt.Errorf("paper %d: %w", paperID, database.ErrNotFound)
	}
	for _, id := range s.favorites[userID] {
		if id == paperID {
			return false, nil
		}
	}
	s.favorites[userID] = append(s.favorites[userID], paperID)
	return true, nil
}

func (s *fakeStore) RemoveFavorite(_ context.Context, userID string, paperID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.favorites[userID]
	for i, id := range ids {
		if id == paperID {
			s.favorites[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite %s/%d: %w", userID, paperID, database.ErrNotFound)
}

func (s *fakeStore) IsFavorite(_ context.Context, userID string, paperID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.favorites[userID] {
		if id == paperID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SearchPapers(_ context.Context, q database.SearchQuery, limit int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = q
	s.lastLimit = limit
	return []int{5, 4, 1}, nil
}

func (s *fakeStore) SearchJournals(_ context.Context, terms []string) ([]string, error) {
	if len(terms) == 0 {
		return []string{}, nil
	}
	out := []string{}
	for _, j := range []string{"Cell", "Nature", "Nature Physics", "Physical Review"} {
		if strings.Contains(strings.ToLower(j), strings.ToLower(terms[0])) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (s *fakeStore) PapersByJournal(_ context.Context, journal string, limit int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	ids := []int{}
	for id := 6; id >= 1; id-- {
		if s.papers[id].Journal == journal {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeSource struct {
	matrix *features.Matrix
}

func (f fakeSource) Snapshot() *features.Matrix { return f.matrix }

var errBoom = errors.New("boom")

type testServer struct {
	engine  *fakeEngine
	store   *fakeStore
	handler *Handler
	http    http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	engine := &fakeEngine{
		similar: []recommend.ScoredPaper{{ID: 4, Score: 0.91}, {ID: 3, Score: 0.55}},
		daily:   []int{5, 3},
	}
	store := newFakeStore()
	handler := NewHandler(engine, store, fakeSource{matrix: features.Empty(16)}, HandlerConfig{
		MaxSearchResults: 50,
		Version:          "test",
	})
	handler.now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	router := NewRouter(handler, RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitDisabled: true,
		RequestTimeout:    5 * time.Second,
	})
	return &testServer{engine: engine, store: store, handler: handler, http: router.Setup()}
}

// envelope mirrors models.APIResponse with the data left undecoded.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v: %s", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v: %s", err, env.Data)
	}
}
