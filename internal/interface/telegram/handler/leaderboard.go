// Package handler contains one handler per bot command. Handlers take a
// typed request, call the application layer, and return the HTML reply;
// delivery is the router's job.
package handler

import (
	"context"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// LeaderboardRequest contains parameters for /leaderboard.
type LeaderboardRequest struct {
	// RequesterID highlights the caller's own row.
	RequesterID string

	// Limit caps the number of entries (0 = default).
	Limit int
}

// LeaderboardHandler handles /leaderboard.
type LeaderboardHandler struct {
	query     *query.GetLeaderboardHandler
	presenter *presenter.LeaderboardPresenter
}

// NewLeaderboardHandler creates the handler.
func NewLeaderboardHandler(q *query.GetLeaderboardHandler, p *presenter.LeaderboardPresenter) *LeaderboardHandler {
	return &LeaderboardHandler{query: q, presenter: p}
}

// Handle returns the formatted leaderboard.
func (h *LeaderboardHandler) Handle(ctx context.Context, req LeaderboardRequest) (string, error) {
	result, err := h.query.Handle(ctx, query.GetLeaderboardQuery{Limit: req.Limit})
	if err != nil {
		return "", err
	}
	return h.presenter.FormatLeaderboard(result, req.RequesterID), nil
}
