package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePrecedence_CoversEveryRoleOnce(t *testing.T) {
	assert.Equal(t, []Role{RoleStoreManager, RoleTeamLeader, RoleStoreClerk, RoleBoatCaptain}, RolePrecedence)

	seen := map[Role]bool{}
	for _, r := range RolePrecedence {
		assert.True(t, r.IsValid())
		assert.False(t, seen[r], "role %s listed twice", r)
		seen[r] = true
	}
}

func TestRole_IsFloor(t *testing.T) {
	assert.True(t, RoleTeamLeader.IsFloor())
	assert.True(t, RoleStoreClerk.IsFloor())
	assert.False(t, RoleStoreManager.IsFloor())
	assert.False(t, RoleBoatCaptain.IsFloor())
}
