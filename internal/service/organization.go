package service

import (
	"context"
	"fmt"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/model"
	"taglayer/internal/permission"
	"taglayer/internal/repository"
	"taglayer/pkg/pagination"
	"taglayer/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mailer sends transactional email without blocking the request path.
type Mailer interface {
	SendAsync(to, subject, template, locale string, data map[string]any)
}

// OrganizationService handles organization business logic
type OrganizationService struct {
	repo   repository.IOrganizationRepository
	users  repository.IUserRepository
	mailer Mailer
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.IOrganizationRepository, users repository.IUserRepository, mailer Mailer) *OrganizationService {
	return &OrganizationService{repo: repo, users: users, mailer: mailer}
}

// CreateForUser provisions an organization with the user as creator,
// admin and member, on the default free plan.
func (s *OrganizationService) CreateForUser(ctx context.Context, user *model.User, name string) (*model.Organization, error) {
	if name == "" {
		name = user.Name + " Org"
	}

	org := &model.Organization{
		Name:       name,
		CreatorID:  user.ID,
		MembersIDs: []primitive.ObjectID{user.ID},
		AdminsIDs:  []primitive.ObjectID{user.ID},
		Plan:       model.DefaultPlan(),
	}

	created, err := s.repo.Create(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	if err := s.users.UpdateFields(ctx, user.ID, bson.M{"organizationId": created.ID}); err != nil {
		return nil, fmt.Errorf("failed to attach user to organization: %w", err)
	}
	return created, nil
}

// Get returns the caller's organization.
func (s *OrganizationService) Get(ctx context.Context, session auth.Session) (*model.Organization, error) {
	if err := permission.Require(session.Roles, permission.OrgRead); err != nil {
		return nil, err
	}
	return s.fetch(ctx, session.OrganizationID)
}

// Update applies a partial update to the caller's organization.
func (s *OrganizationService) Update(ctx context.Context, session auth.Session, body *model.UpdateOrganizationBody) (*model.Organization, error) {
	if err := permission.Require(session.Roles, permission.OrgUpdate); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.Validation("organization data is required")
	}

	fields := bson.M{}
	if body.Name != nil {
		if *body.Name == "" {
			return nil, apperror.Validation("organization name cannot be empty")
		}
		fields["name"] = *body.Name
	}
	if len(fields) == 0 {
		return s.fetch(ctx, session.OrganizationID)
	}

	if err := s.repo.UpdateFields(ctx, session.OrganizationID, fields); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return s.fetch(ctx, session.OrganizationID)
}

// Delete removes the caller's organization and returns the deleted
// document. Owner only.
func (s *OrganizationService) Delete(ctx context.Context, session auth.Session) (*model.Organization, error) {
	if err := permission.Require(session.Roles, permission.OrgDelete); err != nil {
		return nil, err
	}

	org, err := s.repo.DeleteAndReturn(ctx, session.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete organization: %w", err)
	}
	if org == nil {
		return nil, apperror.OrganizationNotFound(session.OrganizationID.Hex())
	}
	return org, nil
}

// AddMember adds an existing user to the organization by email and
// sends them an invite notification.
func (s *OrganizationService) AddMember(ctx context.Context, session auth.Session, body *model.AddMemberBody) (*model.Organization, error) {
	if err := permission.Require(session.Roles, permission.MemberAdd); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, apperror.Validation("member data is required")
	}

	user, err := s.users.FindByEmail(ctx, body.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperror.UserNotFound(body.Email)
	}

	org, err := s.fetch(ctx, session.OrganizationID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddMember(ctx, org.ID, user.ID, body.Admin); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	if err := s.users.UpdateFields(ctx, user.ID, bson.M{"organizationId": org.ID}); err != nil {
		return nil, fmt.Errorf("failed to attach user to organization: %w", err)
	}

	s.mailer.SendAsync(user.Email, "You have been added to "+org.Name, "invite", user.Locale, map[string]any{
		"Name":    user.Name,
		"OrgName": org.Name,
	})

	return s.fetch(ctx, session.OrganizationID)
}

// RemoveMember removes a user from the organization's member and admin
// lists. The creator cannot be removed.
func (s *OrganizationService) RemoveMember(ctx context.Context, session auth.Session, userID string) (*model.Organization, error) {
	if err := permission.Require(session.Roles, permission.MemberRemove); err != nil {
		return nil, err
	}

	uid, err := util.ParseObjectID(userID)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}

	org, err := s.fetch(ctx, session.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org.CreatorID == uid {
		return nil, apperror.Validation("the organization creator cannot be removed")
	}
	if !org.HasMember(uid) {
		return nil, apperror.UserNotFound(userID)
	}

	if err := s.repo.RemoveMember(ctx, org.ID, uid); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}
	if err := s.users.UpdateFields(ctx, uid, bson.M{"organizationId": primitive.NilObjectID}); err != nil {
		return nil, fmt.Errorf("failed to detach user from organization: %w", err)
	}
	return s.fetch(ctx, session.OrganizationID)
}

// ListMembers returns the organization's users, paginated.
func (s *OrganizationService) ListMembers(ctx context.Context, session auth.Session, p pagination.Params) ([]*model.User, int64, error) {
	if err := permission.Require(session.Roles, permission.OrgRead); err != nil {
		return nil, 0, err
	}

	total, err := s.users.CountByOrg(ctx, session.OrganizationID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	users, err := s.users.FindByOrg(ctx, session.OrganizationID, p.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, total, nil
}

func (s *OrganizationService) fetch(ctx context.Context, id primitive.ObjectID) (*model.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, apperror.OrganizationNotFound(id.Hex())
	}
	return org, nil
}
