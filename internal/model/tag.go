package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a labeled metadata entity scoped to an organization and
// optionally to one of its projects.
type Tag struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key            string             `bson:"key" json:"key"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions   string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	OrganizationID primitive.ObjectID `bson:"organizationId" json:"organizationId"`
	ProjectID      primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	CreatorID      primitive.ObjectID `bson:"creatorId" json:"creatorId"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Tag) GetID() primitive.ObjectID   { return t.ID }
func (t *Tag) SetID(id primitive.ObjectID) { t.ID = id }

// TagResponse is the public API shape of a tag.
type TagResponse struct {
	ID             string    `json:"id"`
	Key            string    `json:"key"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Instructions   string    `json:"instructions,omitempty"`
	OrganizationID string    `json:"organizationId"`
	ProjectID      string    `json:"projectId,omitempty"`
	CreatorID      string    `json:"creatorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToAPI converts a Tag to its public API shape.
func (t *Tag) ToAPI() TagResponse {
	resp := TagResponse{
		ID:             t.ID.Hex(),
		Key:            t.Key,
		Name:           t.Name,
		Description:    t.Description,
		Instructions:   t.Instructions,
		OrganizationID: t.OrganizationID.Hex(),
		CreatorID:      t.CreatorID.Hex(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if !t.ProjectID.IsZero() {
		resp.ProjectID = t.ProjectID.Hex()
	}
	return resp
}
