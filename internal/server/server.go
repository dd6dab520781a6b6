package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taglayer/internal/config"
	"taglayer/internal/logging"
	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	http     *http.Server
	mongo    *mongo.Client
	services *Services
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	registerValidators()

	repos := InitRepositories(db)
	services, err := InitServices(cfg, repos)
	if err != nil {
		return nil, err
	}
	handlers := InitHandlers(services)

	router := setupRouter(repos, services, handlers)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    cfg.Server.Address(),
			Handler: router,
		},
		mongo:    mongoClient,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	logging.Logger.Infof("server listening on %s", s.cfg.Server.Address())
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and disconnects MongoDB
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if s.mongo != nil {
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// registerValidators adds custom binding validators.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("plantype", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case model.PlanStarter, model.PlanPro:
				return true
			}
			return false
		})
	}
}

func setupRouter(repos *Repositories, s *Services, h *Handlers) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	api := r.Group("/api")

	// Unauthenticated routes
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/billing/webhook", h.Billing.Webhook)

	// Protected routes accept a Bearer JWT or X-API-Key
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.JWT, repos.Users, repos.Organizations, s.APIKeys))

	users := protected.Group("/users")
	{
		users.GET("/me", h.Auth.Me)
		users.PATCH("/me", h.Auth.UpdateMe)
	}

	org := protected.Group("/orgs/me")
	{
		org.GET("", h.Org.Get)
		org.PATCH("", h.Org.Update)
		org.DELETE("", h.Org.Delete)

		org.GET("/members", h.Org.ListMembers)
		org.POST("/members", h.Org.AddMember)
		org.DELETE("/members/:userId", h.Org.RemoveMember)

		apiKeys := org.Group("/apikeys")
		apiKeys.GET("", h.APIKey.List)
		apiKeys.POST("", h.APIKey.Generate)
		apiKeys.DELETE("/:keyId", h.APIKey.Revoke)
		apiKeys.POST("/:keyId/activate", h.APIKey.Activate)
	}

	projects := protected.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PATCH("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)
	}

	tags := protected.Group("/tags")
	{
		tags.GET("", h.Tag.List)
		tags.POST("", h.Tag.Create)
		tags.GET("/:id", h.Tag.Get)
		tags.PATCH("/:id", h.Tag.Update)
		tags.DELETE("/:id", h.Tag.Delete)
	}

	billing := protected.Group("/billing")
	{
		billing.POST("/checkout", h.Billing.Checkout)
	}

	return r
}
