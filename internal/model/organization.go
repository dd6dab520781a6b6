package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan types
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPro     = "pro"
)

// Plan statuses mirror the billing provider's subscription statuses.
const (
	PlanStatusActive   = "active"
	PlanStatusPastDue  = "past_due"
	PlanStatusCanceled = "canceled"
)

// Plan periods
const (
	PlanPeriodMonthly = "monthly"
	PlanPeriodYearly  = "yearly"
)

// Plan is the billing tier embedded in an organization document.
type Plan struct {
	Type             string    `bson:"type" json:"type"`
	Status           string    `bson:"status" json:"status"`
	Period           string    `bson:"period,omitempty" json:"period,omitempty"`
	CustomerID       string    `bson:"customerId,omitempty" json:"-"`
	SubscriptionID   string    `bson:"subscriptionId,omitempty" json:"-"`
	CurrentPeriodEnd time.Time `bson:"currentPeriodEnd,omitempty" json:"currentPeriodEnd,omitempty"`
}

// DefaultPlan is the plan assigned to newly created organizations.
func DefaultPlan() Plan {
	return Plan{Type: PlanFree, Status: PlanStatusActive}
}

// Organization is the top-level tenant entity.
type Organization struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	CreatorID  primitive.ObjectID   `bson:"creatorId" json:"creatorId"`
	MembersIDs []primitive.ObjectID `bson:"membersIds" json:"membersIds"`
	AdminsIDs  []primitive.ObjectID `bson:"adminsIds" json:"adminsIds"`
	Plan       Plan                 `bson:"plan" json:"plan"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (o *Organization) GetID() primitive.ObjectID   { return o.ID }
func (o *Organization) SetID(id primitive.ObjectID) { o.ID = id }

// HasMember reports whether the user id is in the members list.
func (o *Organization) HasMember(userID primitive.ObjectID) bool {
	for _, id := range o.MembersIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasAdmin reports whether the user id is in the admins list.
func (o *Organization) HasAdmin(userID primitive.ObjectID) bool {
	for _, id := range o.AdminsIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OrganizationResponse is the public API shape of an organization.
type OrganizationResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatorID  string    `json:"creatorId"`
	MembersIDs []string  `json:"membersIds"`
	AdminsIDs  []string  `json:"adminsIds"`
	Plan       Plan      `json:"plan"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToAPI converts an Organization to its public API shape.
func (o *Organization) ToAPI() OrganizationResponse {
	return OrganizationResponse{
		ID:         o.ID.Hex(),
		Name:       o.Name,
		CreatorID:  o.CreatorID.Hex(),
		MembersIDs: hexIDs(o.MembersIDs),
		AdminsIDs:  hexIDs(o.AdminsIDs),
		Plan:       o.Plan,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
