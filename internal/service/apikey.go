package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/config"
	"taglayer/internal/model"
	"taglayer/internal/permission"
	"taglayer/internal/repository"
	"taglayer/pkg/timer"
	"taglayer/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// apiKeyCacheEntry is a cached validation result with expiration
type apiKeyCacheEntry struct {
	key       *model.APIKey
	expiresAt time.Time
}

// APIKeyService handles API key business logic
type APIKeyService struct {
	repo          repository.IAPIKeyRepository
	cfg           *config.Config
	keyCache      map[string]*apiKeyCacheEntry // plainKey -> cached result
	keyCacheMutex sync.RWMutex
	cacheTTL      time.Duration
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(repo repository.IAPIKeyRepository, cfg *config.Config) *APIKeyService {
	cacheSeconds := cfg.APIKeyCacheTTLSeconds
	if cacheSeconds <= 0 {
		cacheSeconds = 300 // fallback to 5 minutes if misconfigured
	}

	return &APIKeyService{
		repo:     repo,
		cfg:      cfg,
		keyCache: make(map[string]*apiKeyCacheEntry),
		cacheTTL: time.Duration(cacheSeconds) * time.Second,
	}
}

func generateAndHash() (plainKey string, hash string, err error) {
	plainKey, err = util.GenerateAPIKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key: %w", err)
	}

	hash, err = util.HashAPIKey(plainKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash key: %w", err)
	}

	return plainKey, hash, nil
}

// GenerateKey creates a new API key for the caller's organization. The
// plain key is returned exactly once.
func (s *APIKeyService) GenerateKey(ctx context.Context, session auth.Session, keyName string) (*model.GeneratedAPIKeyResponse, error) {
	if err := permission.Require(session.Roles, permission.APIKeyManage); err != nil {
		return nil, err
	}

	plainKey, hash, err := generateAndHash()
	if err != nil {
		return nil, err
	}

	apiKey := &model.APIKey{
		OrganizationID: session.OrganizationID,
		Name:           keyName,
		Hash:           hash,
		CreatedBy:      session.UserID,
		CreatedAt:      time.Now(),
		IsActive:       true,
		UpdatedAt:      time.Now(),
	}

	created, err := s.repo.Create(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}

	return &model.GeneratedAPIKeyResponse{
		PlainKey:       plainKey,
		KeyID:          created.ID.Hex(),
		KeyName:        created.Name,
		OrganizationID: session.OrganizationID.Hex(),
		CreatedAt:      created.CreatedAt,
		ExpiresIn:      "Never (until revoked)",
	}, nil
}

// List retrieves all API keys for the caller's organization.
func (s *APIKeyService) List(ctx context.Context, session auth.Session) ([]*model.APIKeyResponse, error) {
	if err := permission.Require(session.Roles, permission.APIKeyManage); err != nil {
		return nil, err
	}

	apiKeys, err := s.repo.FindByOrgID(ctx, session.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	responses := make([]*model.APIKeyResponse, len(apiKeys))
	for i, key := range apiKeys {
		resp := key.ToAPI()
		responses[i] = &resp
	}

	return responses, nil
}

// RevokeKey deletes an API key belonging to the caller's organization.
func (s *APIKeyService) RevokeKey(ctx context.Context, session auth.Session, keyID string) error {
	if err := permission.Require(session.Roles, permission.APIKeyManage); err != nil {
		return err
	}

	key, err := s.fetchOwned(ctx, session, keyID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, key.ID); err != nil {
		return fmt.Errorf("failed to revoke key: %w", err)
	}
	return nil
}

// SetActive toggles an API key's active flag.
func (s *APIKeyService) SetActive(ctx context.Context, session auth.Session, keyID string, active bool) error {
	if err := permission.Require(session.Roles, permission.APIKeyManage); err != nil {
		return err
	}

	key, err := s.fetchOwned(ctx, session, keyID)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, key.ID, map[string]interface{}{"isActive": active}); err != nil {
		return fmt.Errorf("failed to update key: %w", err)
	}
	return nil
}

// ValidateKey verifies a plain key against stored hashes and updates
// last used. Valid results are cached for the configured TTL.
func (s *APIKeyService) ValidateKey(ctx context.Context, plainKey string) (*model.APIKey, error) {
	defer timer.Track("Validate Auth Key (Total)")()
	// Check cache first
	s.keyCacheMutex.RLock()
	if entry, exists := s.keyCache[plainKey]; exists && time.Now().Before(entry.expiresAt) {
		s.keyCacheMutex.RUnlock()
		_ = s.repo.UpdateLastUsed(ctx, entry.key.ID)
		return entry.key, nil
	}
	s.keyCacheMutex.RUnlock()

	// Cache miss or expired: query database
	keys, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate key: %w", err)
	}

	for _, key := range keys {
		if util.VerifyAPIKey(plainKey, key.Hash) {
			_ = s.repo.UpdateLastUsed(ctx, key.ID)

			// Cache the valid key
			s.keyCacheMutex.Lock()
			s.keyCache[plainKey] = &apiKeyCacheEntry{
				key:       key,
				expiresAt: time.Now().Add(s.cacheTTL),
			}
			s.keyCacheMutex.Unlock()

			return key, nil
		}
	}

	return nil, apperror.InvalidCredentials()
}

// KeyCount returns the number of API keys for an organization.
func (s *APIKeyService) KeyCount(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.repo.Count(ctx, map[string]interface{}{"organizationId": orgID})
}

func (s *APIKeyService) fetchOwned(ctx context.Context, session auth.Session, keyID string) (*model.APIKey, error) {
	objID, err := util.ParseObjectID(keyID)
	if err != nil {
		return nil, apperror.Validation("invalid key id")
	}

	key, err := s.repo.FindByID(ctx, objID)
	if err != nil {
		return nil, apperror.APIKeyNotFound(keyID)
	}
	if key.OrganizationID != session.OrganizationID {
		return nil, apperror.APIKeyNotFound(keyID)
	}
	return key, nil
}
