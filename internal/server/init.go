package server

import (
	"fmt"

	"taglayer/internal/auth"
	"taglayer/internal/config"
	"taglayer/internal/handler"
	"taglayer/internal/mailer"
	"taglayer/internal/repository"
	"taglayer/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories holds all data access objects
type Repositories struct {
	Organizations repository.IOrganizationRepository
	Projects      repository.IProjectRepository
	Tags          repository.ITagRepository
	Users         repository.IUserRepository
	APIKeys       repository.IAPIKeyRepository
}

// Services holds all business logic objects
type Services struct {
	Organizations *service.OrganizationService
	Projects      *service.ProjectService
	Tags          *service.TagService
	Users         *service.UserService
	APIKeys       *service.APIKeyService
	Billing       *service.BillingService
	JWT           *auth.JWTService
	Mailer        *mailer.Mailer
}

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth    *handler.AuthHandler
	Org     *handler.OrganizationHandler
	Project *handler.ProjectHandler
	Tag     *handler.TagHandler
	APIKey  *handler.APIKeyHandler
	Billing *handler.BillingHandler
}

// InitRepositories wires all repositories against the database
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Organizations: repository.NewOrganizationRepository(db),
		Projects:      repository.NewProjectRepository(db),
		Tags:          repository.NewTagRepository(db),
		Users:         repository.NewUserRepository(db),
		APIKeys:       repository.NewAPIKeyRepository(db),
	}
}

// InitServices wires all services against the repositories
func InitServices(cfg *config.Config, repos *Repositories) (*Services, error) {
	m, err := mailer.New(cfg.SMTP)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	jwtSvc := auth.NewJWTService(cfg)

	return &Services{
		Organizations: service.NewOrganizationService(repos.Organizations, repos.Users, m),
		Projects:      service.NewProjectService(repos.Projects),
		Tags:          service.NewTagService(repos.Tags, repos.Projects),
		Users:         service.NewUserService(repos.Users, jwtSvc, m),
		APIKeys:       service.NewAPIKeyService(repos.APIKeys, cfg),
		Billing:       service.NewBillingService(cfg, repos.Organizations, repos.Users, m),
		JWT:           jwtSvc,
		Mailer:        m,
	}, nil
}

// InitHandlers wires all handlers against the services
func InitHandlers(s *Services) *Handlers {
	return &Handlers{
		Auth:    handler.NewAuthHandler(s.Users, s.Organizations, s.APIKeys),
		Org:     handler.NewOrganizationHandler(s.Organizations),
		Project: handler.NewProjectHandler(s.Projects),
		Tag:     handler.NewTagHandler(s.Tags),
		APIKey:  handler.NewAPIKeyHandler(s.APIKeys),
		Billing: handler.NewBillingHandler(s.Billing),
	}
}
