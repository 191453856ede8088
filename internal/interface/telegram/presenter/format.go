// Package presenter formats query results into Telegram HTML messages.
package presenter

import (
	"fmt"
	"html"
	"time"
)

// Escape screens user-controlled text for HTML parse mode.
func Escape(s string) string {
	return html.EscapeString(s)
}

// PositionEmoji возвращает медаль для призовых мест и номер для остальных.
func PositionEmoji(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

// MemberLabel возвращает отображаемое имя участника или его ID,
// если имя неизвестно.
func MemberLabel(displayName, memberID string) string {
	if displayName != "" {
		return Escape(displayName)
	}
	return Escape(memberID)
}

// FormatLastActive humanizes the last-active timestamp.
func FormatLastActive(lastActive time.Time, neverActive bool) string {
	if neverActive || lastActive.IsZero() {
		return "Never"
	}

	since := time.Since(lastActive)
	switch {
	case since < time.Minute:
		return "just now"
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(since.Hours())/24)
	}
}

// Plural picks the singular or plural form by count.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
