package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/external/telegram"
)

func TestObserveRecordsMember(t *testing.T) {
	r := NewRoster()

	r.Observe(&telegram.User{ID: 42, FirstName: "Alice", Username: "alice"}, -100)

	m, ok := r.Get("42")
	require.True(t, ok)
	assert.Equal(t, tracker.MemberID("42"), m.ID)
	assert.Equal(t, "Alice", m.DisplayName)
	assert.Equal(t, int64(-100), m.ChatID)
	assert.False(t, m.IsBot)
	assert.Equal(t, 1, r.Len())
}

func TestObserveIgnoresNilAndZeroID(t *testing.T) {
	r := NewRoster()

	r.Observe(nil, -100)
	r.Observe(&telegram.User{ID: 0, FirstName: "Ghost"}, -100)

	assert.Zero(t, r.Len())
}

func TestObservePrivateChatStaysDeliveryTarget(t *testing.T) {
	r := NewRoster()

	// Private chat first (chat ID == user ID), then a group message.
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, 42)
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, -100)

	m, _ := r.Get("42")
	assert.Equal(t, int64(42), m.ChatID)
}

func TestObserveGroupThenPrivateUpgrades(t *testing.T) {
	r := NewRoster()

	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, -100)
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, 42)

	m, _ := r.Get("42")
	assert.Equal(t, int64(42), m.ChatID)
}

func TestResolve(t *testing.T) {
	r := NewRoster()
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice", Username: "Alice_Dev"}, -100)

	// Username with and without @, any case.
	id, ok := r.Resolve("@alice_dev")
	require.True(t, ok)
	assert.Equal(t, tracker.MemberID("42"), id)

	id, ok = r.Resolve("ALICE_DEV")
	require.True(t, ok)
	assert.Equal(t, tracker.MemberID("42"), id)

	// Numeric IDs resolve even without an observation.
	id, ok = r.Resolve("777")
	require.True(t, ok)
	assert.Equal(t, tracker.MemberID("777"), id)

	_, ok = r.Resolve("@nobody")
	assert.False(t, ok)

	_, ok = r.Resolve("")
	assert.False(t, ok)
}

func TestListMembersIncludesBots(t *testing.T) {
	r := NewRoster()
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, -100)
	r.Observe(&telegram.User{ID: 99, FirstName: "Helper", IsBot: true}, -100)

	members, err := r.ListMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	// The sweep filters bots itself; the roster just reports them.
	var bots int
	for _, m := range members {
		if m.IsBot {
			bots++
		}
	}
	assert.Equal(t, 1, bots)
}

func TestResolveChat(t *testing.T) {
	r := NewRoster()
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice", Username: "alice"}, -100)

	// Numeric destinations pass through as chat IDs.
	chatID, ok := r.ResolveChat("-100200")
	require.True(t, ok)
	assert.Equal(t, int64(-100200), chatID)

	// Usernames resolve to the member's known chat.
	chatID, ok = r.ResolveChat("@alice")
	require.True(t, ok)
	assert.Equal(t, int64(-100), chatID)

	_, ok = r.ResolveChat("@nobody")
	assert.False(t, ok)

	_, ok = r.ResolveChat("")
	assert.False(t, ok)
}

func TestObserveUpdatesDisplayName(t *testing.T) {
	r := NewRoster()
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice"}, -100)
	r.Observe(&telegram.User{ID: 42, FirstName: "Alice", LastName: "Liddell"}, -100)

	m, _ := r.Get("42")
	assert.Equal(t, "Alice Liddell", m.DisplayName)
}
