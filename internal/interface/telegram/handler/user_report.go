package handler

import (
	"context"
	"strings"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
	"github.com/codegrind-hub/codegrind-bot/internal/interface/telegram/presenter"
)

const userReportUsage = "Usage: /user_report &lt;member&gt;\nExample: <code>/user_report @alice</code>"

// UserReportRequest contains parameters for /user_report.
type UserReportRequest struct {
	Args string
}

// UserReportHandler handles the admin /user_report command. The report is
// delivered to the admin's private chat, not the originating chat.
type UserReportHandler struct {
	query     *query.GetMemberReportHandler
	resolver  MemberResolver
	presenter *presenter.MemberPresenter
}

// NewUserReportHandler creates the handler.
func NewUserReportHandler(q *query.GetMemberReportHandler, resolver MemberResolver, p *presenter.MemberPresenter) *UserReportHandler {
	return &UserReportHandler{query: q, resolver: resolver, presenter: p}
}

// Handle resolves the member argument and builds the report text.
func (h *UserReportHandler) Handle(ctx context.Context, req UserReportRequest) (string, error) {
	arg := strings.TrimSpace(req.Args)
	if arg == "" {
		return userReportUsage, nil
	}

	memberID, ok := h.resolver.Resolve(arg)
	if !ok {
		return "🤷 Unknown member: " + presenter.Escape(arg), nil
	}

	report, err := h.query.Handle(ctx, query.GetMemberReportQuery{MemberID: memberID})
	if err != nil {
		return "", err
	}

	return h.presenter.FormatReport(report), nil
}
