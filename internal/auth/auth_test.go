package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleChecker_Matrix(t *testing.T) {
	checker := NewRoleChecker()

	cases := []struct {
		role    string
		table   string
		action  Action
		allowed bool
	}{
		{RoleAdmin, "transactions", ActionCreate, true},
		{RoleAdmin, "reports", ActionView, true},
		{RoleAdmin, "users", ActionDelete, true},

		{RoleApp, "transactions", ActionCreate, true},
		{RoleApp, "transfers", ActionDelete, true},
		{RoleApp, "reports", ActionView, true},
		{RoleApp, "reports", ActionCreate, false},
		{RoleApp, "reports", ActionDelete, false},

		{RoleAudit, "reports", ActionView, true},
		{RoleAudit, "reports", ActionCreate, false},
		{RoleAudit, "transactions", ActionView, false},
		{RoleAudit, "transactions", ActionCreate, false},
		{RoleAudit, "users", ActionDelete, false},

		{"intruder", "transactions", ActionView, false},
		{"", "transactions", ActionView, false},
	}

	for _, tc := range cases {
		got := checker.CanPerform(tc.role, tc.table, tc.action)
		assert.Equal(t, tc.allowed, got, "role=%q table=%q action=%q", tc.role, tc.table, tc.action)
	}
}

func TestRole_DefaultsWhenHeaderEmpty(t *testing.T) {
	assert.Equal(t, RoleApp, Role(""))
	assert.Equal(t, RoleAudit, Role(RoleAudit))
	assert.Equal(t, "intruder", Role("intruder"))
}
