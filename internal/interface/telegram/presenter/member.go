package presenter

import (
	"fmt"
	"strings"

	"github.com/codegrind-hub/codegrind-bot/internal/application/command"
	"github.com/codegrind-hub/codegrind-bot/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// MEMBER PRESENTER
// Карточка участника: статистика, прогресс по цели, админский отчёт
// и подтверждения записанных решений.
// ══════════════════════════════════════════════════════════════════════════════

// MemberPresenter форматирует данные одного участника.
type MemberPresenter struct{}

// NewMemberPresenter создаёт презентер.
func NewMemberPresenter() *MemberPresenter {
	return &MemberPresenter{}
}

// FormatStats форматирует ответ /stats.
func (p *MemberPresenter) FormatStats(dto *query.MemberStatsDTO) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 <b>%s</b>\n\n", MemberLabel(dto.DisplayName, dto.MemberID)))
	sb.WriteString(fmt.Sprintf("✅ Solved: <b>%d</b>\n", dto.Solved))
	sb.WriteString(fmt.Sprintf("🏅 Rank: <b>#%d</b>\n", dto.Rank))
	sb.WriteString(fmt.Sprintf("🔥 Streak: <b>%d</b> %s\n", dto.Streak, Plural(dto.Streak, "day", "days")))
	sb.WriteString(fmt.Sprintf("🕐 Last active: %s", FormatLastActive(dto.LastActive, dto.NeverActive)))

	return sb.String()
}

// FormatStreak форматирует ответ /streak.
func (p *MemberPresenter) FormatStreak(dto *query.MemberStatsDTO) string {
	if dto.Streak == 0 {
		return "🧊 <b>No active streak.</b> Solve something today to start one!"
	}
	return fmt.Sprintf("🔥 <b>%d-%s streak!</b> Keep it going.",
		dto.Streak, Plural(dto.Streak, "day", "day"))
}

// FormatProgress форматирует ответ /progress.
func (p *MemberPresenter) FormatProgress(dto *query.ProgressDTO) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📈 <b>%s</b>\n\n", MemberLabel(dto.DisplayName, dto.MemberID)))

	if dto.Goal.Set {
		sb.WriteString(fmt.Sprintf("🎯 Goal: <b>%d / %d</b> (%d%%)\n",
			dto.Goal.Solved, dto.Goal.Goal, dto.Goal.Percent))
	} else {
		sb.WriteString("🎯 Goal: <i>not set</i> — use /set_goal &lt;n&gt;\n")
	}

	sb.WriteString(fmt.Sprintf("📅 Last %d days: <b>%d</b> %s\n",
		query.ProgressWindowDays, dto.WindowSum, Plural(dto.WindowSum, "solve", "solves")))
	sb.WriteString(fmt.Sprintf("🔥 Streak: <b>%d</b> %s", dto.Streak, Plural(dto.Streak, "day", "days")))

	return sb.String()
}

// FormatReport форматирует расширенный отчёт /user_report.
func (p *MemberPresenter) FormatReport(dto *query.MemberReportDTO) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 <b>Member report: %s</b>\n",
		MemberLabel(dto.Stats.DisplayName, dto.Stats.MemberID)))
	sb.WriteString(fmt.Sprintf("<code>%s</code>\n\n", Escape(dto.Stats.MemberID)))

	if !dto.Stats.Known {
		sb.WriteString("⚠️ <i>No activity record for this member.</i>")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("✅ Solved: <b>%d</b> (rank #%d)\n", dto.Stats.Solved, dto.Stats.Rank))
	sb.WriteString(fmt.Sprintf("🔥 Streak: <b>%d</b> %s\n", dto.Stats.Streak, Plural(dto.Stats.Streak, "day", "days")))
	sb.WriteString(fmt.Sprintf("🕐 Last active: %s\n", FormatLastActive(dto.Stats.LastActive, dto.Stats.NeverActive)))
	sb.WriteString(fmt.Sprintf("📅 7-day window: %d • 30-day window: %d\n", dto.Window7, dto.Window30))
	sb.WriteString(fmt.Sprintf("🗓 Active on %d %s total\n", dto.ActiveDays, Plural(dto.ActiveDays, "day", "days")))

	if dto.Goal.Set {
		sb.WriteString(fmt.Sprintf("🎯 Goal: %d / %d (%d%%)", dto.Goal.Solved, dto.Goal.Goal, dto.Goal.Percent))
	} else {
		sb.WriteString("🎯 Goal: not set")
	}

	return sb.String()
}

// FormatSolveRecorded подтверждает засчитанное решение по код-блоку.
func (p *MemberPresenter) FormatSolveRecorded(displayName string, result *command.RecordSolveResult) string {
	return fmt.Sprintf("✅ <b>%s</b> +1! Total: <b>%d</b> • streak: <b>%d</b> 🔥",
		MemberLabel(displayName, result.MemberID.String()), result.TotalSolved, result.Streak)
}

// FormatGoalSet подтверждает установку или сброс цели.
func (p *MemberPresenter) FormatGoalSet(result *command.SetGoalResult) string {
	if result.Cleared {
		return "🎯 Goal cleared."
	}
	return fmt.Sprintf("🎯 Goal set to <b>%d</b> problems. Good luck!", result.Goal)
}

// FormatSolvesAdjusted подтверждает админскую корректировку счётчика.
func (p *MemberPresenter) FormatSolvesAdjusted(memberLabel string, result *command.ModifySolvesResult) string {
	text := fmt.Sprintf("🛠 <b>%s</b>: counter adjusted, new total <b>%d</b>.", memberLabel, result.NewTotal)
	if result.Clamped {
		text += "\n⚠️ <i>Clamped at zero: the counter never goes negative.</i>"
	}
	return text
}
