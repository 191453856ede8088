package query

import (
	"context"
	"time"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MEMBER STATS QUERY
// Счётчики, ранг и серия одного участника. Ранг читается через кеш, если
// он подключён; кеш - только витрина, источником истины остаётся агрегатор.
// ══════════════════════════════════════════════════════════════════════════════

// RankCache - опциональный кеш рангов для витринных чтений.
// Реализация живёт в infrastructure/persistence/redis; nil допустим.
type RankCache interface {
	// GetRank возвращает закешированный ранг участника.
	GetRank(ctx context.Context, memberID string) (int, bool)

	// SetRank опортунистически записывает свежевычисленный ранг.
	SetRank(ctx context.Context, memberID string, rank int)
}

// GetMemberStatsQuery содержит параметры запроса.
type GetMemberStatsQuery struct {
	MemberID tracker.MemberID

	// Today - опорный день для вычисления серии (по умолчанию сейчас).
	Today time.Time
}

// MemberStatsDTO - статистика одного участника.
type MemberStatsDTO struct {
	MemberID    string
	DisplayName string
	Solved      int
	Rank        int
	Streak      int

	// LastActive - время последней активности.
	LastActive time.Time

	// NeverActive - участник ещё ни разу не был активен.
	NeverActive bool

	// Known - встречался ли участник хранилищу вообще.
	Known bool
}

// GetMemberStatsHandler обрабатывает запрос статистики.
type GetMemberStatsHandler struct {
	agg       *tracker.Aggregator
	rankCache RankCache // может быть nil
}

// NewGetMemberStatsHandler создаёт обработчик.
func NewGetMemberStatsHandler(agg *tracker.Aggregator, rankCache RankCache) *GetMemberStatsHandler {
	return &GetMemberStatsHandler{agg: agg, rankCache: rankCache}
}

// Handle выполняет запрос.
func (h *GetMemberStatsHandler) Handle(ctx context.Context, q GetMemberStatsQuery) (*MemberStatsDTO, error) {
	if !q.MemberID.IsValid() {
		return nil, tracker.ErrInvalidMemberID
	}

	today := q.Today
	if today.IsZero() {
		today = timeutil.Now()
	}

	dto := &MemberStatsDTO{
		MemberID:    q.MemberID.String(),
		NeverActive: true,
	}

	rec, known := h.agg.Get(q.MemberID)
	dto.Known = known
	if known {
		dto.DisplayName = rec.DisplayName
		dto.Solved = rec.ProblemsSolved
		dto.Streak = rec.Streak(today)
		dto.LastActive = rec.LastActive
		dto.NeverActive = rec.NeverActive()
	}

	dto.Rank = h.resolveRank(ctx, q.MemberID)

	return dto, nil
}

// resolveRank читает ранг из кеша, при промахе вычисляет и кладёт обратно.
func (h *GetMemberStatsHandler) resolveRank(ctx context.Context, id tracker.MemberID) int {
	if h.rankCache != nil {
		if rank, ok := h.rankCache.GetRank(ctx, id.String()); ok {
			return rank
		}
	}

	rank := h.agg.Rank(id)
	if h.rankCache != nil {
		h.rankCache.SetRank(ctx, id.String(), rank)
	}
	return rank
}
