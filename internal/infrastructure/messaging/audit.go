package messaging

import (
	"log/slog"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
)

// RegisterAuditLog attaches a catch-all subscriber that writes every
// domain event to the structured log. This is the activity audit trail:
// who solved what, who adjusted whom, who went quiet.
func RegisterAuditLog(bus shared.EventBus, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	return bus.SubscribeAll(func(event shared.Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
		}

		switch e := event.(type) {
		case shared.SolveRecordedEvent:
			attrs = append(attrs, "member_id", e.MemberID, "day", e.Day,
				"total_solved", e.TotalSolved, "source", e.Source)
		case shared.PuzzleSkippedEvent:
			attrs = append(attrs, "member_id", e.MemberID, "day", e.Day)
		case shared.GoalSetEvent:
			attrs = append(attrs, "member_id", e.MemberID, "goal", e.Goal)
		case shared.SolvesAdjustedEvent:
			attrs = append(attrs, "member_id", e.MemberID, "delta", e.Delta,
				"new_total", e.NewTotal, "admin_id", e.AdminID)
		case shared.MemberInactiveEvent:
			attrs = append(attrs, "member_id", e.MemberID,
				"last_active", e.LastActive, "inactive_for", e.Inactive)
		}

		logger.Info("domain event", attrs...)
		return nil
	})
}
