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
// RECORD DAILY PUZZLE COMMAND
// Вариант записи решения для ежедневной загадки. Единственное отличие от
// RecordSolve - защита "раз в день": если за сегодня уже есть активность,
// счётчик не трогается и участнику сообщается "уже решено". Эта асимметрия
// с обычным триггером сохранена сознательно.
// ══════════════════════════════════════════════════════════════════════════════

// SourceDailyPuzzle marks solves triggered by the daily puzzle command.
const SourceDailyPuzzle = "daily_puzzle"

// RecordDailyPuzzleCommand contains the data to record a puzzle solve.
type RecordDailyPuzzleCommand struct {
	MemberID    tracker.MemberID
	DisplayName string

	// OccurredAt is when the command was invoked (defaults to now if zero).
	OccurredAt time.Time
}

// Validate validates the command.
func (c RecordDailyPuzzleCommand) Validate() error {
	if !c.MemberID.IsValid() {
		return tracker.ErrInvalidMemberID
	}
	return nil
}

// RecordDailyPuzzleResult contains the result of the puzzle trigger.
type RecordDailyPuzzleResult struct {
	// AlreadyDone is true when today's activity was already positive and
	// nothing was recorded.
	AlreadyDone bool

	// TotalSolved is the member's counter (unchanged when AlreadyDone).
	TotalSolved int

	// Streak is the member's streak after the call.
	Streak int
}

// RecordDailyPuzzleHandler handles RecordDailyPuzzleCommand.
type RecordDailyPuzzleHandler struct {
	store     *tracker.Store
	persister tracker.Persister
	publisher shared.EventPublisher
	mu        *sync.Mutex
}

// NewRecordDailyPuzzleHandler creates the handler.
func NewRecordDailyPuzzleHandler(
	store *tracker.Store,
	persister tracker.Persister,
	publisher shared.EventPublisher,
	mu *sync.Mutex,
) *RecordDailyPuzzleHandler {
	return &RecordDailyPuzzleHandler{
		store:     store,
		persister: persister,
		publisher: publisher,
		mu:        mu,
	}
}

// Handle records the puzzle solve unless today is already active.
func (h *RecordDailyPuzzleHandler) Handle(ctx context.Context, cmd RecordDailyPuzzleCommand) (*RecordDailyPuzzleResult, error) {
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

	if rec.ActiveOn(at) {
		if h.publisher != nil {
			_ = h.publisher.Publish(shared.NewPuzzleSkippedEvent(cmd.MemberID.String(), timeutil.DayKey(at)))
		}
		return &RecordDailyPuzzleResult{
			AlreadyDone: true,
			TotalSolved: rec.ProblemsSolved,
			Streak:      rec.Streak(at),
		}, nil
	}

	rec.RecordSolve(at)

	if err := h.persister.Save(ctx, h.store); err != nil {
		return nil, err
	}

	if h.publisher != nil {
		_ = h.publisher.Publish(shared.NewSolveRecordedEvent(
			cmd.MemberID.String(), timeutil.DayKey(at), rec.ProblemsSolved, SourceDailyPuzzle,
		))
	}

	return &RecordDailyPuzzleResult{
		TotalSolved: rec.ProblemsSolved,
		Streak:      rec.Streak(at),
	}, nil
}
