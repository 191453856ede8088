package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// seedAggregator builds a store with three members:
// alice 5 solved (30th+31st), bob 5 solved (31st), carol 1 solved (1st).
func seedAggregator(t *testing.T) *tracker.Aggregator {
	t.Helper()

	store := tracker.NewStore()

	alice := store.GetOrCreate("alice")
	alice.DisplayName = "Alice"
	alice.RecordSolve(day("2026-08-30"))
	alice.RecordSolve(day("2026-08-30"))
	alice.RecordSolve(day("2026-08-31"))
	alice.RecordSolve(day("2026-08-31"))
	alice.RecordSolve(day("2026-08-31"))

	bob := store.GetOrCreate("bob")
	bob.DisplayName = "Bob"
	for i := 0; i < 5; i++ {
		bob.RecordSolve(day("2026-08-31"))
	}

	carol := store.GetOrCreate("carol")
	carol.DisplayName = "Carol"
	carol.RecordSolve(day("2026-08-01"))

	return tracker.NewAggregator(store)
}

// stubRankCache is a controllable RankCache test double.
type stubRankCache struct {
	ranks map[string]int
	sets  map[string]int
}

func newStubRankCache() *stubRankCache {
	return &stubRankCache{ranks: make(map[string]int), sets: make(map[string]int)}
}

func (s *stubRankCache) GetRank(ctx context.Context, memberID string) (int, bool) {
	rank, ok := s.ranks[memberID]
	return rank, ok
}

func (s *stubRankCache) SetRank(ctx context.Context, memberID string, rank int) {
	s.sets[memberID] = rank
}

// ─── Leaderboard ─────────────────────────────────────────────────────────────

func TestLeaderboardOrdersAndRanks(t *testing.T) {
	h := NewGetLeaderboardHandler(seedAggregator(t))

	result, err := h.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)

	require.Len(t, result.Entries, 3)
	assert.Equal(t, 3, result.TotalMembers)

	// alice and bob tie at 5; insertion order breaks the tie.
	assert.Equal(t, "alice", result.Entries[0].MemberID)
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, "bob", result.Entries[1].MemberID)
	assert.Equal(t, "carol", result.Entries[2].MemberID)
	assert.Equal(t, 1, result.Entries[2].Solved)
}

func TestLeaderboardHonorsLimit(t *testing.T) {
	h := NewGetLeaderboardHandler(seedAggregator(t))

	result, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: 1})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, 3, result.TotalMembers)
}

func TestLeaderboardRejectsNegativeLimit(t *testing.T) {
	h := NewGetLeaderboardHandler(seedAggregator(t))

	_, err := h.Handle(context.Background(), GetLeaderboardQuery{Limit: -1})
	assert.Error(t, err)
}

func TestLeaderboardEmptyStore(t *testing.T) {
	h := NewGetLeaderboardHandler(tracker.NewAggregator(tracker.NewStore()))

	result, err := h.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	assert.Zero(t, result.TotalMembers)
}

// ─── Member stats ────────────────────────────────────────────────────────────

func TestMemberStats(t *testing.T) {
	h := NewGetMemberStatsHandler(seedAggregator(t), nil)

	dto, err := h.Handle(context.Background(), GetMemberStatsQuery{
		MemberID: "alice",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.True(t, dto.Known)
	assert.Equal(t, "Alice", dto.DisplayName)
	assert.Equal(t, 5, dto.Solved)
	assert.Equal(t, 1, dto.Rank)
	assert.Equal(t, 2, dto.Streak)
	assert.False(t, dto.NeverActive)
}

func TestMemberStatsUnknownMember(t *testing.T) {
	h := NewGetMemberStatsHandler(seedAggregator(t), nil)

	dto, err := h.Handle(context.Background(), GetMemberStatsQuery{
		MemberID: "stranger",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.False(t, dto.Known)
	assert.True(t, dto.NeverActive)
	assert.Zero(t, dto.Solved)
	// Unknown members rank after everyone.
	assert.Equal(t, 4, dto.Rank)
}

func TestMemberStatsUsesRankCache(t *testing.T) {
	cache := newStubRankCache()
	cache.ranks["alice"] = 7 // stale on purpose
	h := NewGetMemberStatsHandler(seedAggregator(t), cache)

	dto, err := h.Handle(context.Background(), GetMemberStatsQuery{
		MemberID: "alice",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	// The cached value wins over the computed one.
	assert.Equal(t, 7, dto.Rank)
	assert.Empty(t, cache.sets)
}

func TestMemberStatsFillsRankCacheOnMiss(t *testing.T) {
	cache := newStubRankCache()
	h := NewGetMemberStatsHandler(seedAggregator(t), cache)

	dto, err := h.Handle(context.Background(), GetMemberStatsQuery{
		MemberID: "bob",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, dto.Rank)
	assert.Equal(t, 2, cache.sets["bob"])
}

func TestMemberStatsRejectsEmptyID(t *testing.T) {
	h := NewGetMemberStatsHandler(seedAggregator(t), nil)

	_, err := h.Handle(context.Background(), GetMemberStatsQuery{})
	assert.ErrorIs(t, err, tracker.ErrInvalidMemberID)
}

// ─── Top streaks ─────────────────────────────────────────────────────────────

func TestTopStreaks(t *testing.T) {
	h := NewGetTopStreaksHandler(seedAggregator(t))

	result, err := h.Handle(context.Background(), GetTopStreaksQuery{
		Today: day("2026-08-31"),
	})
	require.NoError(t, err)

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "alice", result.Entries[0].MemberID)
	assert.Equal(t, 2, result.Entries[0].Streak)
	assert.Equal(t, 1, result.Entries[0].Rank)
}

// ─── Progress ────────────────────────────────────────────────────────────────

func TestProgress(t *testing.T) {
	agg := seedAggregator(t)
	rec, _ := agg.Get("alice")
	require.NoError(t, rec.SetGoal(10))

	h := NewGetProgressHandler(agg)

	dto, err := h.Handle(context.Background(), GetProgressQuery{
		MemberID: "alice",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.True(t, dto.Goal.Set)
	assert.Equal(t, 50, dto.Goal.Percent)
	assert.Equal(t, 5, dto.WindowSum)
	assert.Equal(t, 2, dto.Streak)
}

func TestProgressWithoutGoal(t *testing.T) {
	h := NewGetProgressHandler(seedAggregator(t))

	dto, err := h.Handle(context.Background(), GetProgressQuery{
		MemberID: "carol",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.False(t, dto.Goal.Set)
	// carol's only solve is outside the 7-day window.
	assert.Zero(t, dto.WindowSum)
	// But the streak anchors on her last active day.
	assert.Equal(t, 1, dto.Streak)
}

// ─── Member report ───────────────────────────────────────────────────────────

func TestMemberReport(t *testing.T) {
	agg := seedAggregator(t)
	stats := NewGetMemberStatsHandler(agg, nil)
	h := NewGetMemberReportHandler(stats, agg)

	report, err := h.Handle(context.Background(), GetMemberReportQuery{
		MemberID: "alice",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.True(t, report.Stats.Known)
	assert.Equal(t, 5, report.Window7)
	assert.Equal(t, 5, report.Window30)
	assert.Equal(t, 2, report.ActiveDays)
	assert.False(t, report.Goal.Set)
}

func TestMemberReportUnknownMember(t *testing.T) {
	agg := seedAggregator(t)
	stats := NewGetMemberStatsHandler(agg, nil)
	h := NewGetMemberReportHandler(stats, agg)

	report, err := h.Handle(context.Background(), GetMemberReportQuery{
		MemberID: "stranger",
		Today:    day("2026-08-31"),
	})
	require.NoError(t, err)

	assert.False(t, report.Stats.Known)
	assert.Zero(t, report.ActiveDays)
}
