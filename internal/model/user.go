package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that belongs to one organization.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"passwordHash" json:"-"`
	OrganizationID primitive.ObjectID `bson:"organizationId,omitempty" json:"organizationId,omitempty"`
	Locale         string             `bson:"locale,omitempty" json:"locale,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) GetID() primitive.ObjectID   { return u.ID }
func (u *User) SetID(id primitive.ObjectID) { u.ID = id }

// UserResponse is the public API shape of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	OrganizationID string    `json:"organizationId,omitempty"`
	Locale         string    `json:"locale,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToAPI converts a User to its public API shape.
func (u *User) ToAPI() UserResponse {
	resp := UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Locale:    u.Locale,
		CreatedAt: u.CreatedAt,
	}
	if !u.OrganizationID.IsZero() {
		resp.OrganizationID = u.OrganizationID.Hex()
	}
	return resp
}
