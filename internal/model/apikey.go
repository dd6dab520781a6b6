package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIKey represents an organization's API key with metadata
type APIKey struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID `bson:"organizationId" json:"organizationId"`
	Name           string             `bson:"name" json:"name"`
	Hash           string             `bson:"hash" json:"-"` // bcrypt hash, never exposed
	CreatedBy      primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	LastUsedAt     time.Time          `bson:"lastUsedAt,omitempty" json:"lastUsedAt,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a *APIKey) GetID() primitive.ObjectID   { return a.ID }
func (a *APIKey) SetID(id primitive.ObjectID) { a.ID = id }

// APIKeyResponse is the public API shape of a key (hash omitted).
type APIKeyResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUsedAt     time.Time `json:"lastUsedAt,omitempty"`
	IsActive       bool      `json:"isActive"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToAPI converts an APIKey to its public shape (excludes the hash).
func (a *APIKey) ToAPI() APIKeyResponse {
	return APIKeyResponse{
		ID:             a.ID.Hex(),
		OrganizationID: a.OrganizationID.Hex(),
		Name:           a.Name,
		CreatedBy:      a.CreatedBy.Hex(),
		CreatedAt:      a.CreatedAt,
		LastUsedAt:     a.LastUsedAt,
		IsActive:       a.IsActive,
		UpdatedAt:      a.UpdatedAt,
	}
}

// GeneratedAPIKeyResponse is returned exactly once, at creation time,
// with the plain key.
type GeneratedAPIKeyResponse struct {
	PlainKey       string    `json:"plainKey"`
	KeyID          string    `json:"keyId"`
	KeyName        string    `json:"keyName"`
	OrganizationID string    `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
	ExpiresIn      string    `json:"expiresIn"`
}
