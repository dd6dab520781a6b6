// Package permission implements the role/action gate evaluated before
// every mutating operation.
package permission

import "taglayer/internal/apperror"

// Role is a caller's standing inside an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleAPIKey Role = "apikey"
)

// Action names an operation guarded by the permission gate.
type Action string

const (
	OrgRead       Action = "org:read"
	OrgUpdate     Action = "org:update"
	OrgDelete     Action = "org:delete"
	MemberAdd     Action = "member:add"
	MemberRemove  Action = "member:remove"
	ProjectCreate Action = "project:create"
	ProjectUpdate Action = "project:update"
	ProjectDelete Action = "project:delete"
	TagCreate     Action = "tag:create"
	TagUpdate     Action = "tag:update"
	TagDelete     Action = "tag:delete"
	BillingManage Action = "billing:manage"
	APIKeyManage  Action = "apikey:manage"
)

// allowed is the static role -> action table. No hierarchy: a role
// grants exactly the actions listed for it.
var allowed = map[Role]map[Action]bool{
	RoleOwner: {
		OrgRead: true, OrgUpdate: true, OrgDelete: true,
		MemberAdd: true, MemberRemove: true,
		ProjectCreate: true, ProjectUpdate: true, ProjectDelete: true,
		TagCreate: true, TagUpdate: true, TagDelete: true,
		BillingManage: true, APIKeyManage: true,
	},
	RoleAdmin: {
		OrgRead: true, OrgUpdate: true,
		MemberAdd: true, MemberRemove: true,
		ProjectCreate: true, ProjectUpdate: true, ProjectDelete: true,
		TagCreate: true, TagUpdate: true, TagDelete: true,
		APIKeyManage: true,
	},
	RoleMember: {
		OrgRead:   true,
		TagCreate: true, TagUpdate: true,
	},
	RoleAPIKey: {
		OrgRead:       true,
		ProjectCreate: true, ProjectUpdate: true, ProjectDelete: true,
		TagCreate: true, TagUpdate: true, TagDelete: true,
	},
}

// Has reports whether any of the given roles permits the action.
func Has(roles []Role, action Action) bool {
	for _, role := range roles {
		if allowed[role][action] {
			return true
		}
	}
	return false
}

// Require returns a PERMISSION_DENIED error when no role permits the
// action, nil otherwise.
func Require(roles []Role, action Action) error {
	if !Has(roles, action) {
		return apperror.PermissionDenied(string(action))
	}
	return nil
}
