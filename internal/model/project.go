package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project groups tags inside an organization and carries its own
// member and admin lists.
type Project struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	OrganizationID primitive.ObjectID   `bson:"organizationId" json:"organizationId"`
	MembersIDs     []primitive.ObjectID `bson:"membersIds" json:"membersIds"`
	AdminsIDs      []primitive.ObjectID `bson:"adminsIds" json:"adminsIds"`
	CreatorID      primitive.ObjectID   `bson:"creatorId" json:"creatorId"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Project) GetID() primitive.ObjectID   { return p.ID }
func (p *Project) SetID(id primitive.ObjectID) { p.ID = id }

// ProjectResponse is the public API shape of a project.
type ProjectResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organizationId"`
	MembersIDs     []string  `json:"membersIds"`
	AdminsIDs      []string  `json:"adminsIds"`
	CreatorID      string    `json:"creatorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToAPI converts a Project to its public API shape.
func (p *Project) ToAPI() ProjectResponse {
	return ProjectResponse{
		ID:             p.ID.Hex(),
		Name:           p.Name,
		OrganizationID: p.OrganizationID.Hex(),
		MembersIDs:     hexIDs(p.MembersIDs),
		AdminsIDs:      hexIDs(p.AdminsIDs),
		CreatorID:      p.CreatorID.Hex(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
