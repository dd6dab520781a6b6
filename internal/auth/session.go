package auth

import (
	"taglayer/internal/model"
	"taglayer/internal/permission"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionKey is the gin context key the auth middleware stores the
// session under.
const SessionKey = "session"

// Session is the request-local identity resolved by the auth
// middleware: who is calling and what they may do in their org.
type Session struct {
	UserID         primitive.ObjectID
	OrganizationID primitive.ObjectID
	Roles          []permission.Role
}

// SessionForUser computes a user's roles from the organization's
// membership arrays.
func SessionForUser(user *model.User, org *model.Organization) Session {
	s := Session{
		UserID:         user.ID,
		OrganizationID: org.ID,
	}
	if org.CreatorID == user.ID {
		s.Roles = append(s.Roles, permission.RoleOwner)
	}
	if org.HasAdmin(user.ID) {
		s.Roles = append(s.Roles, permission.RoleAdmin)
	}
	if org.HasMember(user.ID) {
		s.Roles = append(s.Roles, permission.RoleMember)
	}
	return s
}

// SessionForAPIKey builds a machine session scoped to the key's org.
func SessionForAPIKey(key *model.APIKey) Session {
	return Session{
		UserID:         key.CreatedBy,
		OrganizationID: key.OrganizationID,
		Roles:          []permission.Role{permission.RoleAPIKey},
	}
}
