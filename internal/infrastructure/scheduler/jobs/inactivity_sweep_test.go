package jobs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

type fakeRoster struct {
	members []Member
	err     error
}

func (f *fakeRoster) ListMembers(ctx context.Context) ([]Member, error) {
	return f.members, f.err
}

type fakeNotifier struct {
	notified []Member
	failFor  map[tracker.MemberID]error
}

func (f *fakeNotifier) NotifyInactive(ctx context.Context, m Member, lastActive time.Time, inactiveFor time.Duration) error {
	if err, ok := f.failFor[m.ID]; ok {
		return err
	}
	f.notified = append(f.notified, m)
	return nil
}

type capturingPublisher struct {
	events []shared.Event
}

func (p *capturingPublisher) Publish(e shared.Event) error {
	p.events = append(p.events, e)
	return nil
}

func sweepFixture(t *testing.T) (*tracker.Store, *fakeRoster, *fakeNotifier, *capturingPublisher) {
	t.Helper()

	store := tracker.NewStore()

	stale := store.GetOrCreate("stale")
	stale.RecordSolve(time.Now().UTC().Add(-48 * time.Hour))

	fresh := store.GetOrCreate("fresh")
	fresh.RecordSolve(time.Now().UTC().Add(-time.Hour))

	store.GetOrCreate("silent")

	roster := &fakeRoster{members: []Member{
		{ID: "stale", DisplayName: "Stale", ChatID: 1},
		{ID: "fresh", DisplayName: "Fresh", ChatID: 2},
		{ID: "silent", DisplayName: "Silent", ChatID: 3},
		{ID: "helper", DisplayName: "Helper Bot", ChatID: 4, IsBot: true},
		{ID: "stranger", DisplayName: "Stranger", ChatID: 5},
	}}

	return store, roster, &fakeNotifier{}, &capturingPublisher{}
}

func TestSweepNudgesOnlyStaleMembers(t *testing.T) {
	store, roster, notifier, publisher := sweepFixture(t)
	job := NewInactivitySweepJob(store, nil, roster, notifier, publisher, nil, DefaultSweepConfig())

	require.NoError(t, job.Run(context.Background()))

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, tracker.MemberID("stale"), notifier.notified[0].ID)

	require.Len(t, publisher.events, 1)
	inactive, ok := publisher.events[0].(shared.MemberInactiveEvent)
	require.True(t, ok)
	assert.Equal(t, "stale", inactive.MemberID)
	assert.Greater(t, inactive.Inactive, 24*time.Hour)

	stats := job.LastStats()
	require.NotNil(t, stats)
	assert.Equal(t, 5, stats.MembersChecked)
	assert.Equal(t, 1, stats.BotsSkipped)
	// "silent" never posted, "stranger" is unknown to the store.
	assert.Equal(t, 2, stats.NeverActive)
	assert.Equal(t, 1, stats.InactiveFound)
	assert.Equal(t, 1, stats.NotifiedOK)
	assert.Zero(t, stats.DeliveryErrors)
}

func TestSweepContinuesPastDeliveryFailure(t *testing.T) {
	store := tracker.NewStore()
	for _, id := range []tracker.MemberID{"a", "b"} {
		store.GetOrCreate(id).RecordSolve(time.Now().UTC().Add(-72 * time.Hour))
	}

	roster := &fakeRoster{members: []Member{
		{ID: "a", ChatID: 1},
		{ID: "b", ChatID: 2},
	}}
	notifier := &fakeNotifier{failFor: map[tracker.MemberID]error{
		"a": errors.New("blocked by user"),
	}}

	job := NewInactivitySweepJob(store, nil, roster, notifier, nil, nil, DefaultSweepConfig())
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, tracker.MemberID("b"), notifier.notified[0].ID)

	stats := job.LastStats()
	assert.Equal(t, 2, stats.InactiveFound)
	assert.Equal(t, 1, stats.DeliveryErrors)
	assert.Equal(t, 1, stats.NotifiedOK)
}

func TestSweepFailsWhenRosterUnavailable(t *testing.T) {
	store := tracker.NewStore()
	roster := &fakeRoster{err: errors.New("telegram down")}

	job := NewInactivitySweepJob(store, nil, roster, &fakeNotifier{}, nil, nil, DefaultSweepConfig())
	assert.Error(t, job.Run(context.Background()))
}

func TestSweepCustomThreshold(t *testing.T) {
	store := tracker.NewStore()
	store.GetOrCreate("m").RecordSolve(time.Now().UTC().Add(-2 * time.Hour))

	roster := &fakeRoster{members: []Member{{ID: "m", ChatID: 1}}}
	notifier := &fakeNotifier{}

	cfg := DefaultSweepConfig()
	cfg.Threshold = time.Hour

	job := NewInactivitySweepJob(store, nil, roster, notifier, nil, nil, cfg)
	require.NoError(t, job.Run(context.Background()))

	assert.Len(t, notifier.notified, 1)
}

func TestSweepConcurrentWithWrites(t *testing.T) {
	store := tracker.NewStore()
	var mu sync.Mutex

	members := make([]Member, 32)
	for i := range members {
		id := tracker.MemberID(strconv.Itoa(i))
		members[i] = Member{ID: id, ChatID: int64(i + 1)}
		store.GetOrCreate(id).RecordSolve(time.Now().UTC().Add(-48 * time.Hour))
	}

	job := NewInactivitySweepJob(store, &mu, &fakeRoster{members: members}, nil, nil, nil, DefaultSweepConfig())

	// Mutate the store the way command handlers do, under the shared
	// mutex, while sweeps run. The race detector fails this test if a
	// sweep ever reads the store maps without taking the lock.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			mu.Lock()
			id := tracker.MemberID(strconv.Itoa(i % len(members)))
			store.GetOrCreate(id).RecordSolve(time.Now().UTC())
			mu.Unlock()
		}
	}()

	for i := 0; i < 20; i++ {
		require.NoError(t, job.Run(context.Background()))
	}
	<-done
}
