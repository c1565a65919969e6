package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleTiers(t *testing.T) {
	roles := NormalizeRoles([]UserRole{" Tutor ", "tutor", "student"})
	assert.Equal(t, []UserRole{RoleTutor, RoleStudent}, roles)
	assert.True(t, IsValidRoleList(roles))

	assert.True(t, HasAtLeast(roles, RoleTutor))
	assert.False(t, HasAtLeast(roles, RoleAdmin))
	assert.Equal(t, RoleTutor, HighestRole(roles))

	assert.Equal(t, []UserRole{RoleStudent, RoleAdmin}, EnsureDefaultRole([]UserRole{RoleAdmin}))
	assert.False(t, IsValidRoleList([]UserRole{"owner"}))
	assert.False(t, IsValidRoleList(nil))
}
