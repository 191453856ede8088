package handler

import (
	"context"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

// ProgressRequest contains parameters for /progress.
type ProgressRequest struct {
	MemberID tracker.MemberID
}

// ProgressHandler handles /progress.
type ProgressHandler struct {
	query     *query.GetProgressHandler
	presenter *presenter.MemberPresenter
}

// NewProgressHandler creates the handler.
func NewProgressHandler(q *query.GetProgressHandler, p *presenter.MemberPresenter) *ProgressHandler {
	return &ProgressHandler{query: q, presenter: p}
}

// Handle returns the member's goal progress and recent activity.
func (h *ProgressHandler) Handle(ctx context.Context, req ProgressRequest) (string, error) {
	dto, err := h.query.Handle(ctx, query.GetProgressQuery{MemberID: req.MemberID})
	if err != nil {
		return "", err
	}
	return h.presenter.FormatProgress(dto), nil
}
