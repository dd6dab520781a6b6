package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/model"
	"taglayer/internal/permission"
	"taglayer/internal/repository"
	"taglayer/pkg/pagination"
	"taglayer/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TagService handles tag business logic
type TagService struct {
	repo     repository.ITagRepository
	projects repository.IProjectRepository
}

// NewTagService creates a new tag service
func NewTagService(repo repository.ITagRepository, projects repository.IProjectRepository) *TagService {
	return &TagService{repo: repo, projects: projects}
}

// Create makes a new tag in the caller's organization. The permission
// check runs before any payload validation so a missing body never
// bypasses the gate.
func (s *TagService) Create(ctx context.Context, session auth.Session, body *model.AddTagBody) (*model.Tag, error) {
	if err := permission.Require(session.Roles, permission.TagCreate); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.Validation("tag data is required")
	}
	key := strings.TrimSpace(body.Key)
	if err := util.ValidateTagKey(key); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if body.Name == "" {
		return nil, apperror.Validation("tag name is required")
	}

	exists, err := s.repo.ExistsByKey(ctx, session.OrganizationID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag key: %w", err)
	}
	if exists {
		return nil, apperror.AlreadyExists("a tag with this key already exists")
	}

	tag := &model.Tag{
		Key:            key,
		Name:           body.Name,
		Description:    body.Description,
		Instructions:   body.Instructions,
		OrganizationID: session.OrganizationID,
		CreatorID:      session.UserID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if body.ProjectID != "" {
		projectID, err := s.resolveProject(ctx, session, body.ProjectID)
		if err != nil {
			return nil, err
		}
		tag.ProjectID = projectID
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// Get returns a tag, enforcing that it belongs to the caller's org.
func (s *TagService) Get(ctx context.Context, session auth.Session, id string) (*model.Tag, error) {
	return s.fetchOwned(ctx, session, id)
}

// List returns the caller's tags matching the query filter, paginated.
// Filter keys are passed to the database as-is; only the organization
// scope is forced.
func (s *TagService) List(ctx context.Context, session auth.Session, p pagination.Params) ([]*model.Tag, int64, error) {
	filter := normalizeFilter(p.Filter)
	filter["organizationId"] = session.OrganizationID

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	tags, err := s.repo.Find(ctx, filter, p.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	if tags == nil {
		tags = []*model.Tag{}
	}
	return tags, total, nil
}

// Update applies a partial update to a tag the caller's org owns.
func (s *TagService) Update(ctx context.Context, session auth.Session, id string, body *model.UpdateTagBody) (*model.Tag, error) {
	if err := permission.Require(session.Roles, permission.TagUpdate); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.Validation("tag data is required")
	}

	tag, err := s.fetchOwned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now()}
	if body.Key != nil {
		key := strings.TrimSpace(*body.Key)
		if err := util.ValidateTagKey(key); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		if key != tag.Key {
			exists, err := s.repo.ExistsByKey(ctx, session.OrganizationID, key)
			if err != nil {
				return nil, fmt.Errorf("failed to check tag key: %w", err)
			}
			if exists {
				return nil, apperror.AlreadyExists("a tag with this key already exists")
			}
		}
		fields["key"] = key
	}
	if body.Name != nil {
		if *body.Name == "" {
			return nil, apperror.Validation("tag name cannot be empty")
		}
		fields["name"] = *body.Name
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Instructions != nil {
		fields["instructions"] = *body.Instructions
	}
	if body.ProjectID != nil {
		if *body.ProjectID == "" {
			fields["projectId"] = primitive.NilObjectID
		} else {
			projectID, err := s.resolveProject(ctx, session, *body.ProjectID)
			if err != nil {
				return nil, err
			}
			fields["projectId"] = projectID
		}
	}

	if err := s.repo.UpdateFields(ctx, tag.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return s.fetchOwned(ctx, session, id)
}

// Delete removes a tag and returns the deleted document. A tag in a
// different organization is never touched.
func (s *TagService) Delete(ctx context.Context, session auth.Session, id string) (*model.Tag, error) {
	if err := permission.Require(session.Roles, permission.TagDelete); err != nil {
		return nil, err
	}

	tag, err := s.fetchOwned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteAndReturn(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}
	return deleted, nil
}

// fetchOwned loads a tag and verifies organization ownership.
func (s *TagService) fetchOwned(ctx context.Context, session auth.Session, id string) (*model.Tag, error) {
	if !util.IsValidObjectID(id) {
		return nil, apperror.Validation("invalid tag id")
	}

	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.TagNotFound(id)
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}

	if tag.OrganizationID != session.OrganizationID {
		return nil, apperror.TagNotInOrganization(id, session.OrganizationID.Hex())
	}
	return tag, nil
}

// resolveProject parses a project id and verifies it belongs to the
// caller's organization.
func (s *TagService) resolveProject(ctx context.Context, session auth.Session, id string) (primitive.ObjectID, error) {
	projectID, err := util.ParseObjectID(id)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("invalid project id")
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, apperror.ProjectNotFound(id)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to load project: %w", err)
	}
	if project.OrganizationID != session.OrganizationID {
		return primitive.NilObjectID, apperror.ProjectNotInOrganization(id, session.OrganizationID.Hex())
	}
	return projectID, nil
}

// normalizeFilter copies a query filter, converting values of id-like
// keys to ObjectIDs so they match stored references. Unknown keys pass
// through untouched.
func normalizeFilter(filter bson.M) bson.M {
	out := bson.M{}
	for key, value := range filter {
		switch key {
		case "projectId", "creatorId":
			if s, ok := value.(string); ok {
				if oid, err := primitive.ObjectIDFromHex(s); err == nil {
					out[key] = oid
					continue
				}
			}
			out[key] = value
		default:
			out[key] = value
		}
	}
	return out
}
