// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Топ-N участников по количеству решённых задач. При равных счётчиках
// порядок определяется порядком появления участников в хранилище.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultLeaderboardLimit - размер лидерборда по умолчанию.
const DefaultLeaderboardLimit = 10

// GetLeaderboardQuery содержит параметры запроса лидерборда.
type GetLeaderboardQuery struct {
	// Limit - количество записей (по умолчанию 10).
	Limit int
}

// Validate проверяет корректность параметров запроса.
func (q *GetLeaderboardQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	if q.Limit == 0 {
		q.Limit = DefaultLeaderboardLimit
	}
	return nil
}

// LeaderboardEntryDTO - запись лидерборда.
type LeaderboardEntryDTO struct {
	// Rank - позиция в рейтинге (начиная с 1).
	Rank int

	// MemberID - идентификатор участника.
	MemberID string

	// DisplayName - отображаемое имя.
	DisplayName string

	// Solved - количество решённых задач.
	Solved int

	// LastActive - время последней активности (нулевое = никогда).
	LastActive time.Time
}

// GetLeaderboardResult - результат запроса.
type GetLeaderboardResult struct {
	Entries []LeaderboardEntryDTO

	// TotalMembers - общее количество известных участников.
	TotalMembers int
}

// GetLeaderboardHandler обрабатывает запрос лидерборда.
type GetLeaderboardHandler struct {
	agg *tracker.Aggregator
}

// NewGetLeaderboardHandler создаёт обработчик.
func NewGetLeaderboardHandler(agg *tracker.Aggregator) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{agg: agg}
}

// Handle выполняет запрос.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	top := h.agg.TopN(q.Limit)
	entries := make([]LeaderboardEntryDTO, 0, len(top))
	for i, e := range top {
		entries = append(entries, LeaderboardEntryDTO{
			Rank:        i + 1,
			MemberID:    e.MemberID.String(),
			DisplayName: e.Record.DisplayName,
			Solved:      e.Record.ProblemsSolved,
			LastActive:  e.Record.LastActive,
		})
	}

	return &GetLeaderboardResult{
		Entries:      entries,
		TotalMembers: h.agg.Len(),
	}, nil
}
