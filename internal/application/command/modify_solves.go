package command

import (
	"context"
	"sync"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

// ══════════════════════════════════════════════════════════════════════════════
// MODIFY SOLVES COMMAND
// Админская корректировка счётчика решённых задач. Меняет только счётчик:
// дневная активность и LastActive не затрагиваются, поэтому сумма по дням
// может расходиться с ProblemsSolved - это ожидаемо.
// ══════════════════════════════════════════════════════════════════════════════

// ModifySolvesCommand contains the adjustment request.
type ModifySolvesCommand struct {
	// MemberID is the member whose counter is adjusted.
	MemberID tracker.MemberID

	// Delta is the signed adjustment. Zero is rejected.
	Delta int

	// AdminID identifies the invoking admin (for the audit event).
	AdminID string
}

// Validate validates the command.
func (c ModifySolvesCommand) Validate() error {
	if !c.MemberID.IsValid() {
		return tracker.ErrInvalidMemberID
	}
	if c.Delta == 0 {
		return tracker.ErrZeroAdjustment
	}
	return nil
}

// ModifySolvesResult contains the adjustment outcome.
type ModifySolvesResult struct {
	MemberID tracker.MemberID

	// NewTotal is the counter after the adjustment, clamped at zero.
	NewTotal int

	// Clamped is true when the requested delta would have driven the
	// counter negative.
	Clamped bool
}

// ModifySolvesHandler handles ModifySolvesCommand.
type ModifySolvesHandler struct {
	store     *tracker.Store
	persister tracker.Persister
	publisher shared.EventPublisher
	mu        *sync.Mutex
}

// NewModifySolvesHandler creates the handler.
func NewModifySolvesHandler(
	store *tracker.Store,
	persister tracker.Persister,
	publisher shared.EventPublisher,
	mu *sync.Mutex,
) *ModifySolvesHandler {
	return &ModifySolvesHandler{
		store:     store,
		persister: persister,
		publisher: publisher,
		mu:        mu,
	}
}

// Handle applies the adjustment and persists the store.
func (h *ModifySolvesHandler) Handle(ctx context.Context, cmd ModifySolvesCommand) (*ModifySolvesResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.store.GetOrCreate(cmd.MemberID)
	before := rec.ProblemsSolved

	newTotal, err := rec.AdjustSolves(cmd.Delta)
	if err != nil {
		return nil, err
	}

	if err := h.persister.Save(ctx, h.store); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewSolvesAdjustedEvent(
			cmd.MemberID.String(), cmd.Delta, newTotal, cmd.AdminID,
		))
	}

	return &ModifySolvesResult{
		MemberID: cmd.MemberID,
		NewTotal: newTotal,
		Clamped:  before+cmd.Delta < 0,
	}, nil
}
