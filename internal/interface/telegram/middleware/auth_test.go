package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	m := NewAuthMiddleware(100, []int64{200, 300})

	assert.True(t, m.IsAdmin(100), "owner")
	assert.True(t, m.IsAdmin(200), "configured admin")
	assert.True(t, m.IsAdmin(300), "configured admin")
	assert.False(t, m.IsAdmin(400), "regular user")
	assert.False(t, m.IsAdmin(0), "zero ID")
}

func TestIsAdminWithoutOwner(t *testing.T) {
	m := NewAuthMiddleware(0, nil)

	// No owner configured: nobody is admin, and a zero sender ID never
	// matches the unset owner.
	assert.False(t, m.IsAdmin(0))
	assert.False(t, m.IsAdmin(100))
}

func TestGrantAndRevokeAdmin(t *testing.T) {
	m := NewAuthMiddleware(100, nil)

	assert.False(t, m.IsAdmin(500))
	m.GrantAdmin(500)
	assert.True(t, m.IsAdmin(500))
	m.RevokeAdmin(500)
	assert.False(t, m.IsAdmin(500))
}

func TestRevokeAdminCannotRemoveOwner(t *testing.T) {
	m := NewAuthMiddleware(100, nil)

	m.RevokeAdmin(100)
	assert.True(t, m.IsAdmin(100))
}
