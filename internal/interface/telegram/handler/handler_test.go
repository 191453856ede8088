package handler

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

type nopPersister struct{}

func (nopPersister) Load(ctx context.Context) (*tracker.Store, error) {
	return tracker.NewStore(), nil
}

func (nopPersister) Save(ctx context.Context, store *tracker.Store) error {
	return nil
}

// staticResolver resolves a fixed set of member arguments.
type staticResolver map[string]tracker.MemberID

func (r staticResolver) Resolve(arg string) (tracker.MemberID, bool) {
	id, ok := r[arg]
	return id, ok
}

// ─── SetGoal ─────────────────────────────────────────────────────────────────

func newSetGoalHandler(store *tracker.Store) *SetGoalHandler {
	var mu sync.Mutex
	cmd := command.NewSetGoalHandler(store, nopPersister{}, nil, &mu)
	return NewSetGoalHandler(cmd, presenter.NewMemberPresenter())
}

func TestSetGoalHandlerUsageOnBadInput(t *testing.T) {
	h := newSetGoalHandler(tracker.NewStore())

	for _, args := range []string{"", "  ", "lots"} {
		reply, err := h.Handle(context.Background(), SetGoalRequest{
			MemberID: "42",
			Args:     args,
		})
		require.NoError(t, err)
		assert.Contains(t, reply, "Usage: /set_goal")
	}
}

func TestSetGoalHandlerSetsGoal(t *testing.T) {
	store := tracker.NewStore()
	h := newSetGoalHandler(store)

	reply, err := h.Handle(context.Background(), SetGoalRequest{
		MemberID: "42",
		Args:     " 100 ",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "Goal set to <b>100</b>")
	rec, _ := store.Get("42")
	assert.Equal(t, 100, rec.Goal)
}

func TestSetGoalHandlerZeroClears(t *testing.T) {
	store := tracker.NewStore()
	require.NoError(t, store.GetOrCreate("42").SetGoal(50))
	h := newSetGoalHandler(store)

	reply, err := h.Handle(context.Background(), SetGoalRequest{
		MemberID: "42",
		Args:     "0",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "Goal cleared")
}

func TestSetGoalHandlerRejectsNegative(t *testing.T) {
	h := newSetGoalHandler(tracker.NewStore())

	reply, err := h.Handle(context.Background(), SetGoalRequest{
		MemberID: "42",
		Args:     "-3",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "cannot be negative")
}

// ─── ModifySolves ────────────────────────────────────────────────────────────

func newModifySolvesHandler(store *tracker.Store, resolver MemberResolver) *ModifySolvesHandler {
	var mu sync.Mutex
	cmd := command.NewModifySolvesHandler(store, nopPersister{}, nil, &mu)
	return NewModifySolvesHandler(cmd, resolver, presenter.NewMemberPresenter())
}

func TestModifySolvesHandlerUsage(t *testing.T) {
	h := newModifySolvesHandler(tracker.NewStore(), staticResolver{})

	for _, args := range []string{"", "@alice", "@alice five", "@alice 1 extra"} {
		reply, err := h.Handle(context.Background(), ModifySolvesRequest{
			AdminID: "1",
			Args:    args,
		})
		require.NoError(t, err)
		assert.Contains(t, reply, "Usage: /modify_solves", "args=%q", args)
	}
}

func TestModifySolvesHandlerUnknownMember(t *testing.T) {
	h := newModifySolvesHandler(tracker.NewStore(), staticResolver{})

	reply, err := h.Handle(context.Background(), ModifySolvesRequest{
		AdminID: "1",
		Args:    "@nobody 5",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "Unknown member")
}

func TestModifySolvesHandlerAppliesDelta(t *testing.T) {
	store := tracker.NewStore()
	store.GetOrCreate("42").ProblemsSolved = 10
	h := newModifySolvesHandler(store, staticResolver{"@alice": "42"})

	reply, err := h.Handle(context.Background(), ModifySolvesRequest{
		AdminID: "1",
		Args:    "@alice -4",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "new total <b>6</b>")
	assert.NotContains(t, reply, "Clamped")
}

func TestModifySolvesHandlerReportsClamp(t *testing.T) {
	store := tracker.NewStore()
	store.GetOrCreate("42").ProblemsSolved = 2
	h := newModifySolvesHandler(store, staticResolver{"@alice": "42"})

	reply, err := h.Handle(context.Background(), ModifySolvesRequest{
		AdminID: "1",
		Args:    "@alice -10",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "new total <b>0</b>")
	assert.Contains(t, reply, "Clamped at zero")
}

func TestModifySolvesHandlerRejectsZeroDelta(t *testing.T) {
	h := newModifySolvesHandler(tracker.NewStore(), staticResolver{"@alice": "42"})

	reply, err := h.Handle(context.Background(), ModifySolvesRequest{
		AdminID: "1",
		Args:    "@alice 0",
	})
	require.NoError(t, err)

	assert.Contains(t, reply, "zero adjustment")
}

// ─── Send ────────────────────────────────────────────────────────────────────

func TestSendHandlerParse(t *testing.T) {
	h := NewSendHandler()

	for _, args := range []string{"", "  ", "@alice", "@alice   "} {
		_, ok := h.Parse(SendRequest{Args: args})
		assert.False(t, ok, "args=%q", args)
	}

	parsed, ok := h.Parse(SendRequest{Args: "@alice see you at the contest"})
	require.True(t, ok)
	assert.Equal(t, "@alice", parsed.Destination)
	assert.Equal(t, "see you at the contest", parsed.Text)

	parsed, ok = h.Parse(SendRequest{Args: "-100200 meeting moved to 19:00"})
	require.True(t, ok)
	assert.Equal(t, "-100200", parsed.Destination)
	assert.Equal(t, "meeting moved to 19:00", parsed.Text)
}

// ─── Help ────────────────────────────────────────────────────────────────────

func TestHelpHandlerAdminSection(t *testing.T) {
	h := NewHelpHandler()

	plain, err := h.Handle(context.Background(), HelpRequest{})
	require.NoError(t, err)
	assert.NotContains(t, plain, "/modify_solves")

	admin, err := h.Handle(context.Background(), HelpRequest{IsAdmin: true})
	require.NoError(t, err)
	assert.Contains(t, admin, "/modify_solves")
	assert.Contains(t, admin, "/user_report")
	assert.Contains(t, admin, "/send")
}

// ─── Motivate ────────────────────────────────────────────────────────────────

type staticQuotes string

func (s staticQuotes) Quote() string { return string(s) }

func TestMotivateHandlerEscapesQuote(t *testing.T) {
	h := NewMotivateHandler(staticQuotes("push > quit"))

	reply, err := h.Handle(context.Background(), MotivateRequest{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(reply, "💬 <i>"))
	assert.Contains(t, reply, "push &gt; quit")
}

func TestMotivateHandlerAddressesTarget(t *testing.T) {
	h := NewMotivateHandler(staticQuotes("keep going"))

	reply, err := h.Handle(context.Background(), MotivateRequest{Target: "@alice"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(reply, "<b>@alice</b>,"))
	assert.Contains(t, reply, "keep going")
}
