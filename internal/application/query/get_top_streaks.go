package query

import (
	"context"
	"errors"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TOP STREAKS QUERY
// Топ участников по длине серии. Нулевые серии отфильтровываются.
// ══════════════════════════════════════════════════════════════════════════════

// GetTopStreaksQuery содержит параметры запроса.
type GetTopStreaksQuery struct {
	// Limit - количество записей (по умолчанию 10).
	Limit int

	// Today - опорный день (по умолчанию сейчас).
	Today time.Time
}

// StreakEntryDTO - запись топа серий.
type StreakEntryDTO struct {
	Rank        int
	MemberID    string
	DisplayName string
	Streak      int
}

// GetTopStreaksResult - результат запроса.
type GetTopStreaksResult struct {
	Entries []StreakEntryDTO
}

// GetTopStreaksHandler обрабатывает запрос топа серий.
type GetTopStreaksHandler struct {
	agg *tracker.Aggregator
}

// NewGetTopStreaksHandler создаёт обработчик.
func NewGetTopStreaksHandler(agg *tracker.Aggregator) *GetTopStreaksHandler {
	return &GetTopStreaksHandler{agg: agg}
}

// Handle выполняет запрос.
func (h *GetTopStreaksHandler) Handle(ctx context.Context, q GetTopStreaksQuery) (*GetTopStreaksResult, error) {
	if q.Limit < 0 {
		return nil, errors.New("limit cannot be negative")
	}
	if q.Limit == 0 {
		q.Limit = DefaultLeaderboardLimit
	}
	today := q.Today
	if today.IsZero() {
		today = timeutil.Now()
	}

	top := h.agg.TopStreaks(q.Limit, today)
	entries := make([]StreakEntryDTO, 0, len(top))
	for i, e := range top {
		entries = append(entries, StreakEntryDTO{
			Rank:        i + 1,
			MemberID:    e.MemberID.String(),
			DisplayName: e.DisplayName,
			Streak:      e.Length,
		})
	}

	return &GetTopStreaksResult{Entries: entries}, nil
}
