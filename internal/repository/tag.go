package repository

import (
	"context"

	"taglayer/internal/model"
	"taglayer/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ITagRepository defines tag persistence
type ITagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	Find(ctx context.Context, filter interface{}, opts options.FindOptions) ([]*model.Tag, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*model.Tag, error)
	ExistsByKey(ctx context.Context, orgID primitive.ObjectID, key string) (bool, error)
}

// TagRepository implements tag persistence over the generic base.
type TagRepository struct {
	*generic.MongoBaseRepository[*model.Tag]
}

func NewTagRepository(db *mongo.Database) ITagRepository {
	return &TagRepository{generic.NewBaseRepository[*model.Tag](db.Collection("tags"))}
}

// ExistsByKey reports whether an organization already has a tag with
// the given key.
func (r *TagRepository) ExistsByKey(ctx context.Context, orgID primitive.ObjectID, key string) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"organizationId": orgID, "key": key})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
