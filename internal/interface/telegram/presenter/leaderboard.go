package presenter

import (
	"fmt"
	"strings"

	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD PRESENTER
// Форматирует рейтинг и топ серий для отображения в Telegram.
// ══════════════════════════════════════════════════════════════════════════════

// LeaderboardPresenter форматирует данные рейтинга.
type LeaderboardPresenter struct{}

// NewLeaderboardPresenter создаёт презентер.
func NewLeaderboardPresenter() *LeaderboardPresenter {
	return &LeaderboardPresenter{}
}

// FormatLeaderboard форматирует рейтинг по решённым задачам.
func (p *LeaderboardPresenter) FormatLeaderboard(result *query.GetLeaderboardResult, currentUserID string) string {
	var sb strings.Builder

	sb.WriteString("🏆 <b>CodeGrind Leaderboard</b>\n\n")

	if len(result.Entries) == 0 {
		sb.WriteString("📭 <i>No activity recorded yet. Post a code block to get on the board!</i>")
		return sb.String()
	}

	for _, entry := range result.Entries {
		marker := ""
		if entry.MemberID == currentUserID {
			marker = " ← you"
		}
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> — %d %s%s\n",
			PositionEmoji(entry.Rank),
			MemberLabel(entry.DisplayName, entry.MemberID),
			entry.Solved,
			Plural(entry.Solved, "problem", "problems"),
			marker,
		))
	}

	sb.WriteString(fmt.Sprintf("\n👥 %d %s tracked", result.TotalMembers,
		Plural(result.TotalMembers, "member", "members")))

	return sb.String()
}

// FormatTopStreaks форматирует топ участников по длине серии.
func (p *LeaderboardPresenter) FormatTopStreaks(result *query.GetTopStreaksResult) string {
	var sb strings.Builder

	sb.WriteString("🔥 <b>Longest Streaks</b>\n\n")

	if len(result.Entries) == 0 {
		sb.WriteString("📭 <i>No active streaks right now.</i>")
		return sb.String()
	}

	for _, entry := range result.Entries {
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> — %d %s\n",
			PositionEmoji(entry.Rank),
			MemberLabel(entry.DisplayName, entry.MemberID),
			entry.Streak,
			Plural(entry.Streak, "day", "days"),
		))
	}

	return sb.String()
}
