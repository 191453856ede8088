package handler

import (
	"context"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// StatsRequest contains parameters for /stats and /streak.
type StatsRequest struct {
	MemberID tracker.MemberID
}

// StatsHandler handles /stats.
type StatsHandler struct {
	query     *query.GetMemberStatsHandler
	presenter *presenter.MemberPresenter
}

// NewStatsHandler creates the handler.
func NewStatsHandler(q *query.GetMemberStatsHandler, p *presenter.MemberPresenter) *StatsHandler {
	return &StatsHandler{query: q, presenter: p}
}

// Handle returns the member's stats card.
func (h *StatsHandler) Handle(ctx context.Context, req StatsRequest) (string, error) {
	dto, err := h.query.Handle(ctx, query.GetMemberStatsQuery{MemberID: req.MemberID})
	if err != nil {
		return "", err
	}
	return h.presenter.FormatStats(dto), nil
}

// StreakHandler handles /streak. Reuses the stats query: a streak is
// just one line of the same card.
type StreakHandler struct {
	query     *query.GetMemberStatsHandler
	presenter *presenter.MemberPresenter
}

// NewStreakHandler creates the handler.
func NewStreakHandler(q *query.GetMemberStatsHandler, p *presenter.MemberPresenter) *StreakHandler {
	return &StreakHandler{query: q, presenter: p}
}

// Handle returns the member's current streak.
func (h *StreakHandler) Handle(ctx context.Context, req StatsRequest) (string, error) {
	dto, err := h.query.Handle(ctx, query.GetMemberStatsQuery{MemberID: req.MemberID})
	if err != nil {
		return "", err
	}
	return h.presenter.FormatStreak(dto), nil
}
