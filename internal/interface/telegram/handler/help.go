package handler

import (
	"context"
	"strings"
)

// HelpRequest contains parameters for /help.
type HelpRequest struct {
	// IsAdmin adds the admin command section.
	IsAdmin bool
}

// HelpHandler handles /help.
type HelpHandler struct{}

// NewHelpHandler creates the handler.
func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

// Handle returns the command reference.
func (h *HelpHandler) Handle(ctx context.Context, req HelpRequest) (string, error) {
	var sb strings.Builder

	sb.WriteString("🤖 <b>CodeGrind Bot</b>\n")
	sb.WriteString("Post a message with a code block and it counts as a solved problem.\n\n")
	sb.WriteString("<b>Commands:</b>\n")
	sb.WriteString("• /leaderboard — top solvers\n")
	sb.WriteString("• /stats [@user] — counters and rank (yours, or of the member you reply to)\n")
	sb.WriteString("• /streak — your current streak\n")
	sb.WriteString("• /top_streaks — longest streaks\n")
	sb.WriteString("• /progress — goal progress and 7-day activity\n")
	sb.WriteString("• /set_goal &lt;n&gt; — set a goal (0 clears it)\n")
	sb.WriteString("• /daily_puzzle — today's puzzle, counts once per day\n")
	sb.WriteString("• /motivate — a push when you need one\n")
	sb.WriteString("• /help — this message")

	if req.IsAdmin {
		sb.WriteString("\n\n<b>Admin:</b>\n")
		sb.WriteString("• /modify_solves &lt;member&gt; &lt;±n&gt; — adjust a counter\n")
		sb.WriteString("• /user_report &lt;member&gt; — detailed report (sent privately)\n")
		sb.WriteString("• /send &lt;chat&gt; &lt;text&gt; — relay an announcement")
	}

	return sb.String(), nil
}
