package query

import (
	"context"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS QUERY
// Прогресс по цели + активность за последние 7 дней.
// ══════════════════════════════════════════════════════════════════════════════

// ProgressWindowDays - ширина окна активности в ответе /progress.
const ProgressWindowDays = 7

// GetProgressQuery содержит параметры запроса.
type GetProgressQuery struct {
	MemberID tracker.MemberID

	// Today - опорный день (по умолчанию сейчас).
	Today time.Time
}

// ProgressDTO - прогресс участника.
type ProgressDTO struct {
	MemberID    string
	DisplayName string

	// Goal - прогресс по цели (Set == false, если цель не установлена).
	Goal tracker.GoalProgress

	// WindowSum - активность за последние ProgressWindowDays дней.
	WindowSum int

	// Streak - текущая серия.
	Streak int
}

// GetProgressHandler обрабатывает запрос прогресса.
type GetProgressHandler struct {
	agg *tracker.Aggregator
}

// NewGetProgressHandler создаёт обработчик.
func NewGetProgressHandler(agg *tracker.Aggregator) *GetProgressHandler {
	return &GetProgressHandler{agg: agg}
}

// Handle выполняет запрос.
func (h *GetProgressHandler) Handle(ctx context.Context, q GetProgressQuery) (*ProgressDTO, error) {
	if !q.MemberID.IsValid() {
		return nil, tracker.ErrInvalidMemberID
	}

	today := q.Today
	if today.IsZero() {
		today = timeutil.Now()
	}

	dto := &ProgressDTO{
		MemberID:  q.MemberID.String(),
		Goal:      h.agg.GoalProgress(q.MemberID),
		WindowSum: h.agg.WindowSum(q.MemberID, ProgressWindowDays, today),
	}

	if rec, ok := h.agg.Get(q.MemberID); ok {
		dto.DisplayName = rec.DisplayName
		dto.Streak = rec.Streak(today)
	}

	return dto, nil
}
