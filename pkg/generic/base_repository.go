package generic

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository Interface
type BaseRepository[T Entity] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id string) (T, error)
	Find(ctx context.Context, filter interface{}, opts options.FindOptions) ([]T, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	Update(ctx context.Context, entity T) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (T, error)
}

// MongoBaseRepository Implementation
type MongoBaseRepository[T Entity] struct {
	Collection *mongo.Collection
}

func NewBaseRepository[T Entity](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

// 1. Create
func (r *MongoBaseRepository[T]) Create(ctx context.Context, entity T) error {
	entity.SetID(primitive.NewObjectID())
	_, err := r.Collection.InsertOne(ctx, entity)
	return err
}

// 2. GetByID
func (r *MongoBaseRepository[T]) GetByID(ctx context.Context, id string) (T, error) {
	var entity T
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, errors.New("invalid id")
	}

	err = r.Collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&entity)
	return entity, err
}

// 3. Find with caller-supplied filter and options. A nil filter matches all.
func (r *MongoBaseRepository[T]) Find(ctx context.Context, filter interface{}, opts options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := r.Collection.Find(ctx, filter, &opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// 4. Count
func (r *MongoBaseRepository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.Collection.CountDocuments(ctx, filter)
}

// 5. Update (Full Replace)
func (r *MongoBaseRepository[T]) Update(ctx context.Context, entity T) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity)
	return err
}

// 6. UpdateFields (Partial $set)
func (r *MongoBaseRepository[T]) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// 7. Delete
func (r *MongoBaseRepository[T]) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid id")
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// 8. DeleteAndReturn removes a document and hands back the deleted state.
func (r *MongoBaseRepository[T]) DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (T, error) {
	var entity T
	err := r.Collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&entity)
	return entity, err
}
