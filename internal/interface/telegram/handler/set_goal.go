package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// setGoalUsage is shown when the argument cannot be parsed.
const setGoalUsage = "Usage: /set_goal &lt;number&gt;\nUse <code>/set_goal 0</code> to clear your goal."

// SetGoalRequest contains parameters for /set_goal.
type SetGoalRequest struct {
	MemberID    tracker.MemberID
	DisplayName string
	Args        string
}

// SetGoalHandler handles /set_goal.
type SetGoalHandler struct {
	cmd       *command.SetGoalHandler
	presenter *presenter.MemberPresenter
}

// NewSetGoalHandler creates the handler.
func NewSetGoalHandler(cmd *command.SetGoalHandler, p *presenter.MemberPresenter) *SetGoalHandler {
	return &SetGoalHandler{cmd: cmd, presenter: p}
}

// Handle parses the goal argument and sets or clears the goal.
func (h *SetGoalHandler) Handle(ctx context.Context, req SetGoalRequest) (string, error) {
	arg := strings.TrimSpace(req.Args)
	if arg == "" {
		return setGoalUsage, nil
	}

	goal, err := strconv.Atoi(arg)
	if err != nil {
		return setGoalUsage, nil
	}

	result, err := h.cmd.Handle(ctx, command.SetGoalCommand{
		MemberID:    req.MemberID,
		DisplayName: req.DisplayName,
		Goal:        goal,
	})
	if err != nil {
		if errors.Is(err, tracker.ErrNegativeGoal) {
			return "🚫 A goal cannot be negative.", nil
		}
		return "", err
	}

	return h.presenter.FormatGoalSet(result), nil
}
