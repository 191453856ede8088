package telegram

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/tracker"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/external/telegram"
	"github.com/codegrind-hub/codegrind-bot/internal/infrastructure/scheduler/jobs"
)

// Roster remembers every user the bot has seen in its chats, so the
// inactivity sweep has someone to check and @username arguments can be
// resolved. The Bot API offers no way to enumerate group members, so
// observation is the only source.
//
// Prefers a member's private chat for delivery when one has been seen;
// otherwise the group chat they last posted in is used.
type Roster struct {
	mu        sync.RWMutex
	members   map[tracker.MemberID]jobs.Member
	usernames map[string]tracker.MemberID
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		members:   make(map[tracker.MemberID]jobs.Member),
		usernames: make(map[string]tracker.MemberID),
	}
}

// Observe records a user seen in the given chat.
func (r *Roster) Observe(user *telegram.User, chatID int64) {
	if user == nil || user.ID == 0 {
		return
	}

	id := tracker.MemberID(strconv.FormatInt(user.ID, 10))

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, known := r.members[id]

	member := jobs.Member{
		ID:          id,
		DisplayName: user.FullName(),
		ChatID:      chatID,
		IsBot:       user.IsBot,
	}

	// A private chat with the bot has chatID == userID. Once seen, it
	// stays the delivery target.
	if known && existing.ChatID == user.ID && chatID != user.ID {
		member.ChatID = existing.ChatID
	}

	r.members[id] = member
	if user.Username != "" {
		r.usernames[strings.ToLower(user.Username)] = id
	}
}

// ListMembers implements the sweep job's roster port.
func (r *Roster) ListMembers(ctx context.Context) ([]jobs.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]jobs.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	return members, nil
}

// Resolve maps a command argument to a member ID. Accepts "@username",
// "username", or a raw numeric Telegram ID.
func (r *Roster) Resolve(arg string) (tracker.MemberID, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", false
	}

	if _, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return tracker.MemberID(arg), true
	}

	username := strings.ToLower(strings.TrimPrefix(arg, "@"))

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	return id, ok
}

// ResolveChat maps a delivery destination to a chat ID. A numeric
// argument is taken as a chat ID verbatim (group IDs are negative);
// "@username" resolves to that member's known chat.
func (r *Roster) ResolveChat(arg string) (int64, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, false
	}

	if chatID, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return chatID, true
	}

	id, ok := r.Resolve(arg)
	if !ok {
		return 0, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok || m.ChatID == 0 {
		return 0, false
	}
	return m.ChatID, true
}

// Get returns roster info for a member.
func (r *Roster) Get(id tracker.MemberID) (jobs.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	return m, ok
}

// Len returns the number of known members.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
