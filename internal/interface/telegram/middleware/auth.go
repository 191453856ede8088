// Package middleware contains cross-cutting checks applied before
// command handlers run.
package middleware

import (
	"sync"
)

// DeniedMessage is sent when a non-admin invokes an admin command.
const DeniedMessage = "🚫 <b>Admins only.</b> This command is not available to you."

// AuthMiddleware decides who may run admin commands. The owner comes
// from configuration; further admins can be granted at runtime.
type AuthMiddleware struct {
	mu      sync.RWMutex
	ownerID int64
	admins  map[int64]bool
}

// NewAuthMiddleware creates the middleware. ownerID zero means no owner
// is configured and every admin command is denied.
func NewAuthMiddleware(ownerID int64, adminIDs []int64) *AuthMiddleware {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &AuthMiddleware{ownerID: ownerID, admins: admins}
}

// IsAdmin reports whether the user may run admin commands.
func (m *AuthMiddleware) IsAdmin(telegramID int64) bool {
	if telegramID == 0 {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return telegramID == m.ownerID && m.ownerID != 0 || m.admins[telegramID]
}

// GrantAdmin adds a user to the admin set.
func (m *AuthMiddleware) GrantAdmin(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[telegramID] = true
}

// RevokeAdmin removes a user from the admin set. The owner cannot be
// revoked.
func (m *AuthMiddleware) RevokeAdmin(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.admins, telegramID)
}
