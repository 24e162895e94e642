// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package recommend

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/paperwise/internal/cache"
	"github.com/tomtom215/paperwise/internal/cluster"
	"github.com/tomtom215/paperwise/internal/features"
	"github.com/tomtom215/paperwise/internal/logging"
	"github.com/tomtom215/paperwise/internal/metrics"
	"github.com/tomtom215/paperwise/internal/models"
	"github.com/tomtom215/paperwise/internal/similarity"
)

// FeatureSource supplies immutable feature matrix snapshots.
// *features.Store implements it.
type FeatureSource interface {
	Snapshot() *features.Matrix
}

const (
	kindSimilar = "similar"
	kindDaily   = "daily"

	outcomeOK     = "ok"
	outcomeEmpty  = "empty"
	outcomeCached = "cached"
	outcomeError  = "error"
)

// Engine serves similar-paper and daily recommendations from a feature
// source. It is safe for concurrent use.
type Engine struct {
	config    *Config
	source    FeatureSource
	clusterer *cluster.Clusterer
	cache     *cache.LRU[*DailyResponse]
	logger    zerolog.Logger

	similarCount atomic.Int64
	dailyCount   atomic.Int64
	emptyCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a recommendation engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source FeatureSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if source == nil {
		return nil, fmt.Errorf("feature source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clusterer, err := cluster.NewClusterer(cfg.ClusterConfig(), logger)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:    cfg.Clone(),
		source:    source,
		clusterer: clusterer,
		logger:    logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*DailyResponse](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Similar returns up to topN papers most similar to paperID, excluding the
// paper itself. topN <= 0 uses Limits.DefaultSimilar.
func (e *Engine) Similar(ctx context.Context, paperID, topN int) ([]ScoredPaper, error) {
	start := time.Now()
	e.similarCount.Add(1)
	topN = clampLimit(topN, e.config.Limits.DefaultSimilar, e.config.Limits.MaxSimilar)

	snapshot := e.source.Snapshot()
	v, err := snapshot.Paper(paperID)
	if err != nil {
		return nil, e.fail(kindSimilar, start, err)
	}

	opts := similarity.Options{
		TopN:         topN,
		Threshold:    e.config.Thresholds.Single,
		ExcludeIndex: paperID - 1,
	}
	matches, err := similarity.FindSimilar([]features.Vector{v}, snapshot, opts)
	if err != nil {
		return nil, e.fail(kindSimilar, start, fmt.Errorf("similar to paper %d: %w", paperID, err))
	}

	out := make([]ScoredPaper, len(matches))
	for i, m := range matches {
		out[i] = ScoredPaper{ID: m.Index + 1, Score: m.Score}
	}

	outcome := outcomeOK
	if len(out) == 0 {
		outcome = outcomeEmpty
		e.emptyCount.Add(1)
	}
	metrics.RecordRecommendation(kindSimilar, outcome, time.Since(start))
	logging.Ctx(ctx).Debug().
		Str("component", "recommend").
		Int("paper_id", paperID).
		Int("returned", len(out)).
		Msg("similar papers computed")

	return out, nil
}

// Daily returns the user's recommendations from req.Batch. Empty favorites
// or an empty batch give an empty list. Favorites outside the current
// snapshot fail with features.ErrOutOfRange.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Daily(ctx context.Context, req DailyRequest) (*DailyResponse, error) {
	start := time.Now()
	e.dailyCount.Add(1)

	req.RequestID = requestID(ctx, req.RequestID)
	req.MaxResults = clampLimit(req.MaxResults, e.config.Limits.DefaultDaily, e.config.Limits.MaxDaily)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()

	favorites, err := uniqueFavorites(req.FavoriteIDs)
	if err != nil {
		return nil, e.fail(kindDaily, start, err)
	}
	if !req.Batch.Empty() && req.Batch.MinID > req.Batch.MaxID {
		return nil, e.fail(kindDaily, start,
			fmt.Errorf("batch [%d, %d]: %w", req.Batch.MinID, req.Batch.MaxID, features.ErrInvalidRange))
	}

	if len(favorites) == 0 || req.Batch.Empty() {
		logger.Debug().Int("favorites", len(favorites)).Msg("nothing to score")
		e.emptyCount.Add(1)
		metrics.RecordRecommendation(kindDaily, outcomeEmpty, time.Since(start))
		return e.newResponse(req, favorites, []int{}, ClusterSummary{}, 0, start), nil
	}

	// Bolstering reads the whole snapshot, so its size is part of the key.
	snapshot := e.source.Snapshot()
	key := cacheKey(snapshot.Rows(), req.Batch, favorites, req.MaxResults)
	if resp := e.cached(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		metrics.RecordRecommendation(kindDaily, outcomeCached, time.Since(start))
		return resp, nil
	}

	vectors, err := snapshot.Papers(favorites)
	if err != nil {
		return nil, e.fail(kindDaily, start, fmt.Errorf("resolve favorites: %w", err))
	}
	batch, err := snapshot.PaperRange(req.Batch.MinID, req.Batch.MaxID)
	if err != nil {
		return nil, e.fail(kindDaily, start, fmt.Errorf("resolve batch: %w", err))
	}

	result, err := e.clusterer.ClusterFavorites(ctx, snapshot, favorites, vectors)
	if err != nil {
		return nil, e.fail(kindDaily, start, fmt.Errorf("cluster favorites: %w", err))
	}
	e.recordClustering(len(favorites), result)

	ids, err := Recommend(result.Vectors, batch, req.Batch.MinID, favorites, req.MaxResults, e.config.Thresholds.Group)
	if err != nil {
		return nil, e.fail(kindDaily, start, fmt.Errorf("score batch: %w", err))
	}

	summary := ClusterSummary{
		Clustered:    result.Clustered,
		K:            result.K,
		Silhouette:   result.Silhouette,
		Bolstered:    result.Bolstered,
		TimedOut:     result.TimedOut,
		QueryVectors: len(result.Vectors),
		Candidates:   result.Candidates,
	}
	resp := e.newResponse(req, favorites, ids, summary, snapshot.Rows(), start)
	if e.cache != nil {
		e.cache.Add(key, cloneResponse(resp))
	}

	outcome := outcomeOK
	if len(ids) == 0 {
		outcome = outcomeEmpty
		e.emptyCount.Add(1)
	}
	metrics.RecordRecommendation(kindDaily, outcome, time.Since(start))
	logger.Debug().
		Int("favorites", len(favorites)).
		Int("batch_size", req.Batch.Len()).
		Int("k", result.K).
		Int("returned", len(ids)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("daily recommendations computed")

	return resp, nil
}

// InvalidateCache drops every cached daily result. The feature refresh
// service calls it after appending rows.
func (e *Engine) InvalidateCache() {
	if e.cache == nil {
		return
	}
	e.cache.Clear()
	e.logger.Debug().Msg("cache cleared")
}

// Metrics returns the engine's counters.
func (e *Engine) Metrics() Metrics {
	m := Metrics{
		SimilarRequests: e.similarCount.Load(),
		DailyRequests:   e.dailyCount.Load(),
		EmptyResults:    e.emptyCount.Load(),
		CacheHits:       e.cacheHits.Load(),
		CacheMisses:     e.cacheMisses.Load(),
		ErrorCount:      e.errorCount.Load(),
	}
	if e.cache != nil {
		m.CacheEntries = e.cache.Len()
	}
	return m
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// cached returns a copy of the cached response for key stamped with this
// request's metadata, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cached(key string, req DailyRequest, start time.Time) *DailyResponse {
	if e.cache == nil {
		return nil
	}
	hit, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := cloneResponse(hit)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.UserID = req.UserID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return resp
}

func (e *Engine) recordClustering(favorites int, result *cluster.Result) {
	reason := ""
	switch {
	case result.TimedOut:
		reason = "timeout"
	case !result.Clustered && favorites > e.config.Clustering.MinSize:
		reason = "no_positive_silhouette"
	}
	metrics.RecordClusterSelection(result.K, reason)
}

func (e *Engine) fail(kind string, start time.Time, err error) error {
	e.errorCount.Add(1)
	metrics.RecordRecommendation(kind, outcomeError, time.Since(start))
	return err
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) newResponse(req DailyRequest, favorites, ids []int, summary ClusterSummary, rows int, start time.Time) *DailyResponse {
	return &DailyResponse{
		PaperIDs:   ids,
		Clustering: summary,
		Metadata: ResponseMetadata{
			RequestID:    req.RequestID,
			UserID:       req.UserID,
			Batch:        req.Batch,
			Favorites:    len(favorites),
			SnapshotRows: rows,
			LatencyMS:    time.Since(start).Milliseconds(),
			Timestamp:    time.Now(),
		},
	}
}

func cloneResponse(resp *DailyResponse) *DailyResponse {
	out := *resp
	out.PaperIDs = slices.Clone(resp.PaperIDs)
	out.Clustering.Candidates = slices.Clone(resp.Clustering.Candidates)
	return &out
}

// uniqueFavorites drops repeated ids, keeping first occurrences in order.
func uniqueFavorites(ids []int) ([]int, error) {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id < 1 {
			return nil, fmt.Errorf("favorite %d: %w", id, features.ErrOutOfRange)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// cacheKey identifies a daily result by snapshot size, batch, favorites set
// and limit. Favorites are sorted so the key ignores their order.
func cacheKey(rows int, batch models.BatchRange, favorites []int, limit int) string {
	sorted := slices.Clone(favorites)
	slices.Sort(sorted)

	var b strings.Builder
	b.WriteString(strconv.Itoa(rows))
	b.WriteByte('@')
	b.WriteString(strconv.Itoa(batch.MinID))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(batch.MaxID))
	b.WriteByte('|')
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(limit))
	return b.String()
}

func requestID(ctx context.Context, id string) string {
	if id != "" {
		return id
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}

func clampLimit(n, def, maxN int) int {
	if n <= 0 {
		return def
	}
	return min(n, maxN)
}
