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

// IProjectRepository defines project persistence
type IProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Find(ctx context.Context, filter interface{}, opts options.FindOptions) ([]*model.Project, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteAndReturn(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
}

// ProjectRepository implements project persistence over the generic base.
type ProjectRepository struct {
	*generic.MongoBaseRepository[*model.Project]
}

func NewProjectRepository(db *mongo.Database) IProjectRepository {
	return &ProjectRepository{generic.NewBaseRepository[*model.Project](db.Collection("projects"))}
}
