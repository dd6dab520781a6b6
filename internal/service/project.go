package service

import (
	"context"
	"fmt"
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

// ProjectService handles project business logic
type ProjectService struct {
	repo repository.IProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.IProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create makes a new project in the caller's organization.
func (s *ProjectService) Create(ctx context.Context, session auth.Session, body *model.AddProjectBody) (*model.Project, error) {
	if err := permission.Require(session.Roles, permission.ProjectCreate); err != nil {
		return nil, err
	}
	if body == nil || body.Name == "" {
		return nil, apperror.Validation("project name is required")
	}

	project := &model.Project{
		Name:           body.Name,
		OrganizationID: session.OrganizationID,
		MembersIDs:     []primitive.ObjectID{session.UserID},
		AdminsIDs:      []primitive.ObjectID{session.UserID},
		CreatorID:      session.UserID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// Get returns a project, enforcing organization ownership.
func (s *ProjectService) Get(ctx context.Context, session auth.Session, id string) (*model.Project, error) {
	return s.fetchOwned(ctx, session, id)
}

// List returns the caller's projects matching the query filter,
// paginated.
func (s *ProjectService) List(ctx context.Context, session auth.Session, p pagination.Params) ([]*model.Project, int64, error) {
	filter := normalizeFilter(p.Filter)
	filter["organizationId"] = session.OrganizationID

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	projects, err := s.repo.Find(ctx, filter, p.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, total, nil
}

// Update applies a partial update to a project.
func (s *ProjectService) Update(ctx context.Context, session auth.Session, id string, body *model.UpdateProjectBody) (*model.Project, error) {
	if err := permission.Require(session.Roles, permission.ProjectUpdate); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.Validation("project data is required")
	}

	project, err := s.fetchOwned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now()}
	if body.Name != nil {
		if *body.Name == "" {
			return nil, apperror.Validation("project name cannot be empty")
		}
		fields["name"] = *body.Name
	}

	if err := s.repo.UpdateFields(ctx, project.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.fetchOwned(ctx, session, id)
}

// Delete removes a project and returns the deleted document.
func (s *ProjectService) Delete(ctx context.Context, session auth.Session, id string) (*model.Project, error) {
	if err := permission.Require(session.Roles, permission.ProjectDelete); err != nil {
		return nil, err
	}

	project, err := s.fetchOwned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteAndReturn(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return deleted, nil
}

func (s *ProjectService) fetchOwned(ctx context.Context, session auth.Session, id string) (*model.Project, error) {
	if !util.IsValidObjectID(id) {
		return nil, apperror.Validation("invalid project id")
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ProjectNotFound(id)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if project.OrganizationID != session.OrganizationID {
		return nil, apperror.ProjectNotInOrganization(id, session.OrganizationID.Hex())
	}
	return project, nil
}
