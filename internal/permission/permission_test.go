package permission

import (
	"testing"

	"taglayer/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	tests := []struct {
		name   string
		roles  []Role
		action Action
		want   bool
	}{
		{"owner deletes org", []Role{RoleOwner}, OrgDelete, true},
		{"admin cannot delete org", []Role{RoleAdmin}, OrgDelete, false},
		{"admin manages billing denied", []Role{RoleAdmin}, BillingManage, false},
		{"owner manages billing", []Role{RoleOwner}, BillingManage, true},
		{"member creates tag", []Role{RoleMember}, TagCreate, true},
		{"member cannot delete tag", []Role{RoleMember}, TagDelete, false},
		{"api key deletes tag", []Role{RoleAPIKey}, TagDelete, true},
		{"multiple roles union", []Role{RoleMember, RoleAdmin}, TagDelete, true},
		{"no roles", nil, OrgRead, false},
		{"unknown role", []Role{Role("visitor")}, OrgRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Has(tt.roles, tt.action))
		})
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require([]Role{RoleOwner}, OrgDelete))

	err := Require([]Role{RoleMember}, TagDelete)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
}
