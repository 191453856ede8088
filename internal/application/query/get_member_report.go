package query

import (
	"context"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MEMBER REPORT QUERY
// Расширенный отчёт для администратора: всё, что в /stats и /progress,
// плюс 30-дневное окно активности.
// ══════════════════════════════════════════════════════════════════════════════

// ReportWindowDays - ширина длинного окна в админском отчёте.
const ReportWindowDays = 30

// GetMemberReportQuery содержит параметры запроса.
type GetMemberReportQuery struct {
	MemberID tracker.MemberID
	Today    time.Time
}

// MemberReportDTO - расширенный отчёт об участнике.
type MemberReportDTO struct {
	Stats MemberStatsDTO
	Goal  tracker.GoalProgress

	// Window7 и Window30 - активность за последние 7 и 30 дней.
	Window7  int
	Window30 int

	// ActiveDays - сколько разных дней у участника была активность.
	ActiveDays int
}

// GetMemberReportHandler обрабатывает админский запрос отчёта.
type GetMemberReportHandler struct {
	stats *GetMemberStatsHandler
	agg   *tracker.Aggregator
}

// NewGetMemberReportHandler создаёт обработчик.
func NewGetMemberReportHandler(stats *GetMemberStatsHandler, agg *tracker.Aggregator) *GetMemberReportHandler {
	return &GetMemberReportHandler{stats: stats, agg: agg}
}

// Handle выполняет запрос.
func (h *GetMemberReportHandler) Handle(ctx context.Context, q GetMemberReportQuery) (*MemberReportDTO, error) {
	today := q.Today
	if today.IsZero() {
		today = timeutil.Now()
	}

	stats, err := h.stats.Handle(ctx, GetMemberStatsQuery{MemberID: q.MemberID, Today: today})
	if err != nil {
		return nil, err
	}

	report := &MemberReportDTO{
		Stats:    *stats,
		Goal:     h.agg.GoalProgress(q.MemberID),
		Window7:  h.agg.WindowSum(q.MemberID, ProgressWindowDays, today),
		Window30: h.agg.WindowSum(q.MemberID, ReportWindowDays, today),
	}

	if rec, ok := h.agg.Get(q.MemberID); ok {
		for _, n := range rec.Activity {
			if n > 0 {
				report.ActiveDays++
			}
		}
	}

	return report, nil
}
