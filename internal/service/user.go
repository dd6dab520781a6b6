package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/model"
	"taglayer/internal/repository"
	"taglayer/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles account business logic
type UserService struct {
	repo   repository.IUserRepository
	jwt    *auth.JWTService
	mailer Mailer
}

// NewUserService creates a new user service
func NewUserService(repo repository.IUserRepository, jwt *auth.JWTService, mailer Mailer) *UserService {
	return &UserService{repo: repo, jwt: jwt, mailer: mailer}
}

// Register creates a new account and sends the welcome email.
func (s *UserService) Register(ctx context.Context, body *model.RegisterBody) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(body.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, apperror.AlreadyExists("a user with this email already exists")
	}

	hash, err := util.HashPassword(body.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		// Derive name from the email local part
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Locale:       body.Locale,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	orgName := strings.TrimSpace(body.OrgName)
	if orgName == "" {
		orgName = name + " Org"
	}
	s.mailer.SendAsync(created.Email, "Welcome to Taglayer", "welcome", created.Locale, map[string]any{
		"Name":    created.Name,
		"OrgName": orgName,
	})

	return created, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, body *model.LoginBody) (*model.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(body.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !util.VerifyPassword(body.Password, user.PasswordHash) {
		return nil, "", apperror.InvalidCredentials()
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	uid, err := util.ParseObjectID(id)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperror.UserNotFound(id)
	}
	return user, nil
}

// Update applies a partial update to the caller's own account.
func (s *UserService) Update(ctx context.Context, userID primitive.ObjectID, body *model.UpdateUserBody) (*model.User, error) {
	if body == nil {
		return nil, apperror.Validation("user data is required")
	}

	fields := bson.M{"updatedAt": time.Now()}
	if body.Name != nil {
		if *body.Name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		fields["name"] = *body.Name
	}
	if body.Locale != nil {
		fields["locale"] = *body.Locale
	}

	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.Get(ctx, userID.Hex())
}
