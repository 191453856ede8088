package handler

import (
	"context"
	"fmt"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// PuzzleSource supplies daily puzzle prompts.
type PuzzleSource interface {
	Puzzle() string
}

// DailyPuzzleRequest contains parameters for /daily_puzzle.
type DailyPuzzleRequest struct {
	MemberID    tracker.MemberID
	DisplayName string
}

// DailyPuzzleHandler handles /daily_puzzle: shows a puzzle and counts a
// solve at most once per UTC day.
type DailyPuzzleHandler struct {
	cmd     *command.RecordDailyPuzzleHandler
	puzzles PuzzleSource
}

// NewDailyPuzzleHandler creates the handler.
func NewDailyPuzzleHandler(cmd *command.RecordDailyPuzzleHandler, puzzles PuzzleSource) *DailyPuzzleHandler {
	return &DailyPuzzleHandler{cmd: cmd, puzzles: puzzles}
}

// Handle records the puzzle solve (unless today is already active) and
// returns today's prompt.
func (h *DailyPuzzleHandler) Handle(ctx context.Context, req DailyPuzzleRequest) (string, error) {
	result, err := h.cmd.Handle(ctx, command.RecordDailyPuzzleCommand{
		MemberID:    req.MemberID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return "", err
	}

	puzzle := presenter.Escape(h.puzzles.Puzzle())

	if result.AlreadyDone {
		return fmt.Sprintf(
			"🧩 <b>Daily puzzle</b>\n\n%s\n\n✋ You're already on the board today — this one is just for fun. Total: <b>%d</b>",
			puzzle, result.TotalSolved,
		), nil
	}

	return fmt.Sprintf(
		"🧩 <b>Daily puzzle</b>\n\n%s\n\n✅ +1 recorded! Total: <b>%d</b> • streak: <b>%d</b> 🔥",
		puzzle, result.TotalSolved, result.Streak,
	), nil
}
