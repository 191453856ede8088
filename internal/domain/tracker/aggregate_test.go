package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()

	// alice: 5 solved, active 30th and 31st
	alice := store.GetOrCreate("alice")
	alice.DisplayName = "Alice"
	for i := 0; i < 2; i++ {
		alice.RecordSolve(day("2026-08-30"))
	}
	for i := 0; i < 3; i++ {
		alice.RecordSolve(day("2026-08-31"))
	}

	// bob: 5 solved too, inserted after alice
	bob := store.GetOrCreate("bob")
	bob.DisplayName = "Bob"
	for i := 0; i < 5; i++ {
		bob.RecordSolve(day("2026-08-31"))
	}

	// carol: 1 solved, long ago
	carol := store.GetOrCreate("carol")
	carol.DisplayName = "Carol"
	carol.RecordSolve(day("2026-08-01"))

	return store
}

func TestRankOrdersBySolvedDescending(t *testing.T) {
	agg := NewAggregator(seedStore(t))

	// alice and bob tie at 5; insertion order breaks the tie.
	assert.Equal(t, 1, agg.Rank("alice"))
	assert.Equal(t, 2, agg.Rank("bob"))
	assert.Equal(t, 3, agg.Rank("carol"))
}

func TestRankUnknownMemberIsLast(t *testing.T) {
	agg := NewAggregator(seedStore(t))
	assert.Equal(t, 4, agg.Rank("stranger"))
}

func TestTopN(t *testing.T) {
	agg := NewAggregator(seedStore(t))

	top := agg.TopN(2)
	require.Len(t, top, 2)
	assert.Equal(t, MemberID("alice"), top[0].MemberID)
	assert.Equal(t, MemberID("bob"), top[1].MemberID)

	assert.Len(t, agg.TopN(10), 3)
	assert.Empty(t, agg.TopN(0))
}

func TestTopStreaksExcludesInactive(t *testing.T) {
	agg := NewAggregator(seedStore(t))

	streaks := agg.TopStreaks(10, day("2026-08-31"))
	require.Len(t, streaks, 3)

	// alice has a 2-day run, bob and carol 1 each.
	assert.Equal(t, MemberID("alice"), streaks[0].MemberID)
	assert.Equal(t, 2, streaks[0].Length)
	assert.Equal(t, 1, streaks[1].Length)
}

func TestTopStreaksSkipsMembersWithNoActivity(t *testing.T) {
	store := seedStore(t)
	store.GetOrCreate("dave") // never active

	agg := NewAggregator(store)
	assert.Len(t, agg.TopStreaks(10, day("2026-08-31")), 3)
}

func TestWindowSum(t *testing.T) {
	agg := NewAggregator(seedStore(t))

	// alice: 2 on the 30th + 3 on the 31st inside a 7-day window.
	assert.Equal(t, 5, agg.WindowSum("alice", 7, day("2026-08-31")))

	// 1-day window only counts today.
	assert.Equal(t, 3, agg.WindowSum("alice", 1, day("2026-08-31")))

	// carol's solve on the 1st is outside the window.
	assert.Equal(t, 0, agg.WindowSum("carol", 7, day("2026-08-31")))

	assert.Equal(t, 0, agg.WindowSum("stranger", 7, day("2026-08-31")))
}

func TestGoalProgress(t *testing.T) {
	store := seedStore(t)
	require.NoError(t, store.GetOrCreate("alice").SetGoal(10))

	agg := NewAggregator(store)

	p := agg.GoalProgress("alice")
	assert.True(t, p.Set)
	assert.Equal(t, 5, p.Solved)
	assert.Equal(t, 10, p.Goal)
	assert.Equal(t, 50, p.Percent)

	// No goal set.
	p = agg.GoalProgress("bob")
	assert.False(t, p.Set)
	assert.Equal(t, 5, p.Solved)

	// Unknown member.
	assert.Equal(t, GoalProgress{}, agg.GoalProgress("stranger"))
}

func TestGoalProgressCanExceedHundredPercent(t *testing.T) {
	store := seedStore(t)
	require.NoError(t, store.GetOrCreate("bob").SetGoal(2))

	agg := NewAggregator(store)
	assert.Equal(t, 250, agg.GoalProgress("bob").Percent)
}
