package repository

import (
	"context"
	"time"

	"taglayer/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IOrganizationRepository defines organization persistence
type IOrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) (*model.Organization, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Organization, error)
	FindByMember(ctx context.Context, userID primitive.ObjectID) (*model.Organization, error)
	FindBySubscription(ctx context.Context, subscriptionID string) (*model.Organization, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddMember(ctx context.Context, id, userID primitive.ObjectID, admin bool) error
	RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error
	MergePlan(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*model.Organization, error)
}

// OrganizationRepository implements org persistence
type OrganizationRepository struct {
	collection *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) IOrganizationRepository {
	return &OrganizationRepository{collection: db.Collection("organizations")}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) (*model.Organization, error) {
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, org)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		org.ID = oid
	}
	return org, nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Organization, error) {
	var org *model.Organization
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (r *OrganizationRepository) FindByMember(ctx context.Context, userID primitive.ObjectID) (*model.Organization, error) {
	var org *model.Organization
	err := r.collection.FindOne(ctx, bson.M{"membersIds": userID}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (r *OrganizationRepository) FindBySubscription(ctx context.Context, subscriptionID string) (*model.Organization, error) {
	var org *model.Organization
	err := r.collection.FindOne(ctx, bson.M{"plan.subscriptionId": subscriptionID}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

func (r *OrganizationRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *OrganizationRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID, admin bool) error {
	push := bson.M{"membersIds": userID}
	if admin {
		push["adminsIds"] = userID
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": push,
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (r *OrganizationRepository) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"membersIds": userID, "adminsIds": userID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

// MergePlan applies a partial update to the embedded plan document.
// Field names are relative to the plan, e.g. "status" -> "plan.status".
func (r *OrganizationRepository) MergePlan(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set["plan."+key] = value
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *OrganizationRepository) DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*model.Organization, error) {
	var org *model.Organization
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}
