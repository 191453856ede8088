package command

import (
	"context"
	"sync"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

// ══════════════════════════════════════════════════════════════════════════════
// SET GOAL COMMAND
// Устанавливает личную цель участника. Ноль снимает цель.
// ══════════════════════════════════════════════════════════════════════════════

// SetGoalCommand contains the goal request.
type SetGoalCommand struct {
	MemberID    tracker.MemberID
	DisplayName string

	// Goal is the target solved count. 0 clears the goal, negatives are
	// rejected.
	Goal int
}

// Validate validates the command.
func (c SetGoalCommand) Validate() error {
	if !c.MemberID.IsValid() {
		return tracker.ErrInvalidMemberID
	}
	if c.Goal < 0 {
		return tracker.ErrNegativeGoal
	}
	return nil
}

// SetGoalResult contains the outcome.
type SetGoalResult struct {
	MemberID tracker.MemberID
	Goal     int

	// Cleared is true when the goal was unset.
	Cleared bool
}

// SetGoalHandler handles SetGoalCommand.
type SetGoalHandler struct {
	store     *tracker.Store
	persister tracker.Persister
	publisher shared.EventPublisher
	mu        *sync.Mutex
}

// NewSetGoalHandler creates the handler.
func NewSetGoalHandler(
	store *tracker.Store,
	persister tracker.Persister,
	publisher shared.EventPublisher,
	mu *sync.Mutex,
) *SetGoalHandler {
	return &SetGoalHandler{
		store:     store,
		persister: persister,
		publisher: publisher,
		mu:        mu,
	}
}

// Handle sets the goal and persists the store.
func (h *SetGoalHandler) Handle(ctx context.Context, cmd SetGoalCommand) (*SetGoalResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.store.GetOrCreate(cmd.MemberID)
	if cmd.DisplayName != "" {
		rec.DisplayName = cmd.DisplayName
	}
	if err := rec.SetGoal(cmd.Goal); err != nil {
		return nil, err
	}

	if err := h.persister.Save(ctx, h.store); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewGoalSetEvent(cmd.MemberID.String(), cmd.Goal))
	}

	return &SetGoalResult{
		MemberID: cmd.MemberID,
		Goal:     cmd.Goal,
		Cleared:  cmd.Goal == 0,
	}, nil
}
