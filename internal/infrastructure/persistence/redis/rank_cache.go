package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
)

// rankKeyPrefix namespaces cached rank entries.
const rankKeyPrefix = "codegrind:rank:"

// rankTTL bounds staleness even if an invalidation is missed.
const rankTTL = 10 * time.Minute

// RankCache caches computed leaderboard positions per member. It backs
// the stats query's display cache: a cached rank may lag the live
// standings until the next solve invalidates it. Missing or failing
// Redis reads are reported as cache misses so callers recompute.
type RankCache struct {
	cache  *Cache
	logger *slog.Logger
}

// NewRankCache creates a rank cache on top of the shared cache client.
func NewRankCache(cache *Cache, logger *slog.Logger) *RankCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankCache{cache: cache, logger: logger}
}

// GetRank returns the cached rank for the member, if present.
func (r *RankCache) GetRank(ctx context.Context, memberID string) (int, bool) {
	val, err := r.cache.GetString(ctx, rankKeyPrefix+memberID)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.logger.Warn("rank cache read failed", "member_id", memberID, "error", err)
		}
		return 0, false
	}

	rank, err := strconv.Atoi(val)
	if err != nil || rank < 1 {
		return 0, false
	}
	return rank, true
}

// SetRank stores the member's rank. Errors are logged and swallowed.
func (r *RankCache) SetRank(ctx context.Context, memberID string, rank int) {
	if rank < 1 {
		return
	}
	key := rankKeyPrefix + memberID
	if err := r.cache.SetString(ctx, key, strconv.Itoa(rank), rankTTL); err != nil {
		r.logger.Warn("rank cache write failed", "member_id", memberID, "error", err)
	}
}

// InvalidateAll drops every cached rank. One member's counter change can
// shift every position below it, so invalidation is all-or-nothing.
func (r *RankCache) InvalidateAll(ctx context.Context) {
	if err := r.cache.DeleteByPattern(ctx, rankKeyPrefix+"*"); err != nil {
		r.logger.Warn("rank cache invalidation failed", "error", err)
	}
}

// RegisterInvalidation subscribes the cache to the counter-changing
// events so stale ranks are dropped as soon as the standings move.
func (r *RankCache) RegisterInvalidation(bus shared.EventBus) error {
	invalidate := func(event shared.Event) error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		r.InvalidateAll(ctx)
		return nil
	}

	if err := bus.Subscribe(shared.EventSolveRecorded, invalidate); err != nil {
		return err
	}
	return bus.Subscribe(shared.EventSolvesAdjusted, invalidate)
}
