// Package command contains write operations (CQRS - Commands).
// Every handler mutates the in-memory store and synchronously persists it
// before returning (write-through); a shared mutex keeps the
// read-modify-write of a record and its save atomic.
package command

import (
	"context"
	"sync"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD SOLVE COMMAND
// Записывает одно событие решения (обнаруженный блок кода в сообщении).
// Намеренно НЕ идемпотентна: каждый вызов увеличивает счётчик. Защита
// "раз в день" существует только у ежедневной загадки (см. record_daily_puzzle).
// ══════════════════════════════════════════════════════════════════════════════

// SourceCodeBlock marks solves triggered by a posted code block.
const SourceCodeBlock = "code_block"

// RecordSolveCommand contains the data to record a solve event.
type RecordSolveCommand struct {
	// MemberID is the member the event is attributed to.
	MemberID tracker.MemberID

	// DisplayName refreshes the stored display name when non-empty.
	DisplayName string

	// OccurredAt is when the event happened (defaults to now if zero).
	OccurredAt time.Time
}

// Validate validates the command.
func (c RecordSolveCommand) Validate() error {
	if !c.MemberID.IsValid() {
		return tracker.ErrInvalidMemberID
	}
	return nil
}

// RecordSolveResult contains the result of recording a solve.
type RecordSolveResult struct {
	// MemberID is the member the event was recorded for.
	MemberID tracker.MemberID

	// TotalSolved is the counter after the increment.
	TotalSolved int

	// Day is the UTC day key the event was counted against.
	Day string

	// Streak is the member's streak after the increment.
	Streak int
}

// RecordSolveHandler handles RecordSolveCommand.
type RecordSolveHandler struct {
	store     *tracker.Store
	persister tracker.Persister
	publisher shared.EventPublisher
	mu        *sync.Mutex
}

// NewRecordSolveHandler creates the handler.
func NewRecordSolveHandler(
	store *tracker.Store,
	persister tracker.Persister,
	publisher shared.EventPublisher,
	mu *sync.Mutex,
) *RecordSolveHandler {
	return &RecordSolveHandler{
		store:     store,
		persister: persister,
		publisher: publisher,
		mu:        mu,
	}
}

// Handle records one solve event and persists the store.
func (h *RecordSolveHandler) Handle(ctx context.Context, cmd RecordSolveCommand) (*RecordSolveResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	at := cmd.OccurredAt
	if at.IsZero() {
		at = timeutil.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.store.GetOrCreate(cmd.MemberID)
	if cmd.DisplayName != "" {
		rec.DisplayName = cmd.DisplayName
	}
	rec.RecordSolve(at)

	if err := h.persister.Save(ctx, h.store); err != nil {
		return nil, err
	}

	day := timeutil.DayKey(at)
	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewSolveRecordedEvent(
			cmd.MemberID.String(), day, rec.ProblemsSolved, SourceCodeBlock,
		))
	}

	return &RecordSolveResult{
		MemberID:    cmd.MemberID,
		TotalSolved: rec.ProblemsSolved,
		Day:         day,
		Streak:      rec.Streak(at),
	}, nil
}
