package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateIsLazyAndStable(t *testing.T) {
	store := NewStore()

	rec := store.GetOrCreate("alice")
	require.NotNil(t, rec)
	assert.Equal(t, 1, store.Len())

	// Second call returns the same record.
	rec.ProblemsSolved = 7
	again := store.GetOrCreate("alice")
	assert.Same(t, rec, again)
	assert.Equal(t, 1, store.Len())
}

func TestMembersPreserveInsertionOrder(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("zeta")
	store.GetOrCreate("alpha")
	store.GetOrCreate("mid")

	assert.Equal(t, []MemberID{"zeta", "alpha", "mid"}, store.Members())
}

func TestInsertReplacesWithoutReordering(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("alice")
	store.GetOrCreate("bob")

	replacement := NewRecord("alice")
	replacement.ProblemsSolved = 99
	store.Insert(replacement)

	assert.Equal(t, []MemberID{"alice", "bob"}, store.Members())

	rec, ok := store.Get("alice")
	require.True(t, ok)
	assert.Equal(t, 99, rec.ProblemsSolved)
}

func TestInsertIgnoresInvalidRecords(t *testing.T) {
	store := NewStore()
	store.Insert(nil)
	store.Insert(NewRecord(""))

	assert.Zero(t, store.Len())
	assert.Empty(t, store.Members())
}

func TestGetDoesNotCreate(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("ghost")
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}
