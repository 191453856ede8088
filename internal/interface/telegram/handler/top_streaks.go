package handler

import (
	"context"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// TopStreaksRequest contains parameters for /top_streaks.
type TopStreaksRequest struct {
	Limit int
}

// TopStreaksHandler handles /top_streaks.
type TopStreaksHandler struct {
	query     *query.GetTopStreaksHandler
	presenter *presenter.LeaderboardPresenter
}

// NewTopStreaksHandler creates the handler.
func NewTopStreaksHandler(q *query.GetTopStreaksHandler, p *presenter.LeaderboardPresenter) *TopStreaksHandler {
	return &TopStreaksHandler{query: q, presenter: p}
}

// Handle returns the streak leaderboard.
func (h *TopStreaksHandler) Handle(ctx context.Context, req TopStreaksRequest) (string, error) {
	result, err := h.query.Handle(ctx, query.GetTopStreaksQuery{Limit: req.Limit})
	if err != nil {
		return "", err
	}
	return h.presenter.FormatTopStreaks(result), nil
}
