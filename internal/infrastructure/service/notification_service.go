// Package service contains infrastructure-level services that sit
// between the application layer and external systems.
package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/external/telegram"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/scheduler/jobs"
)

// MessageSender delivers one HTML message to a chat.
type MessageSender interface {
	SendHTML(ctx context.Context, chatID int64, html string) (*telegram.Message, error)
}

// NotificationService delivers out-of-band messages: inactivity nudges
// and admin announcements. Every delivery gets a uuid so a failed send
// can be matched between log lines.
type NotificationService struct {
	sender MessageSender
	logger *slog.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(sender MessageSender, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{sender: sender, logger: logger}
}

// NotifyInactive sends a nudge to a member who has gone quiet.
// Implements the sweep job's notifier port. The error is per-recipient:
// the caller decides whether to keep going.
func (s *NotificationService) NotifyInactive(ctx context.Context, member jobs.Member, lastActive time.Time, inactiveFor time.Duration) error {
	notificationID := uuid.NewString()

	name := member.DisplayName
	if name == "" {
		name = member.ID.String()
	}

	text := fmt.Sprintf(
		"👋 <b>%s</b>, we miss your code!\n\nYour last recorded activity was %s ago. Post a code block to keep your streak alive.",
		html.EscapeString(name),
		formatDuration(inactiveFor),
	)

	if _, err := s.sender.SendHTML(ctx, member.ChatID, text); err != nil {
		s.logger.Warn("inactivity nudge failed",
			"notification_id", notificationID,
			"member_id", member.ID,
			"chat_id", member.ChatID,
			"error", err,
		)
		return fmt.Errorf("notify %s: %w", member.ID, err)
	}

	s.logger.Debug("inactivity nudge delivered",
		"notification_id", notificationID,
		"member_id", member.ID,
	)
	return nil
}

// Announce sends an admin-authored announcement to a chat.
func (s *NotificationService) Announce(ctx context.Context, chatID int64, text string) error {
	notificationID := uuid.NewString()

	if _, err := s.sender.SendHTML(ctx, chatID, text); err != nil {
		s.logger.Warn("announcement failed",
			"notification_id", notificationID,
			"chat_id", chatID,
			"error", err,
		)
		return fmt.Errorf("announce to chat %d: %w", chatID, err)
	}
	return nil
}

// formatDuration renders a duration in whole hours or days, the way a
// human would say it.
func formatDuration(d time.Duration) string {
	if d < time.Hour {
		return "less than an hour"
	}
	hours := int(d.Hours())
	if hours < 48 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d days", hours/24)
}
