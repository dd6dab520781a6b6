package service

import (
	"context"
	"testing"

	"taglayer/internal/apperror"
	"taglayer/internal/auth"
	"taglayer/internal/config"
	"taglayer/internal/model"
	"taglayer/internal/permission"
	"taglayer/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeAPIKeyRepo is an in-memory IAPIKeyRepository that counts
// FindActive calls so cache behavior is observable.
type fakeAPIKeyRepo struct {
	keys        map[string]*model.APIKey
	findActives int
}

func newFakeAPIKeyRepo(keys ...*model.APIKey) *fakeAPIKeyRepo {
	r := &fakeAPIKeyRepo{keys: make(map[string]*model.APIKey)}
	for _, k := range keys {
		r.keys[k.ID.Hex()] = k
	}
	return r
}

func (r *fakeAPIKeyRepo) Create(_ context.Context, key *model.APIKey) (*model.APIKey, error) {
	key.ID = primitive.NewObjectID()
	r.keys[key.ID.Hex()] = key
	return key, nil
}

func (r *fakeAPIKeyRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.APIKey, error) {
	key, ok := r.keys[id.Hex()]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return key, nil
}

func (r *fakeAPIKeyRepo) FindByOrgID(_ context.Context, orgID primitive.ObjectID) ([]*model.APIKey, error) {
	var out []*model.APIKey
	for _, k := range r.keys {
		if k.OrganizationID == orgID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakeAPIKeyRepo) FindActive(_ context.Context) ([]*model.APIKey, error) {
	r.findActives++
	var out []*model.APIKey
	for _, k := range r.keys {
		if k.IsActive {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *fakeAPIKeyRepo) Update(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	if key, ok := r.keys[id.Hex()]; ok {
		if active, ok := fields["isActive"].(bool); ok {
			key.IsActive = active
		}
	}
	return nil
}

func (r *fakeAPIKeyRepo) UpdateLastUsed(context.Context, primitive.ObjectID) error { return nil }

func (r *fakeAPIKeyRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.keys, id.Hex())
	return nil
}

func (r *fakeAPIKeyRepo) Count(context.Context, interface{}) (int64, error) {
	return int64(len(r.keys)), nil
}

func apiKeyService(repo *fakeAPIKeyRepo) *APIKeyService {
	return NewAPIKeyService(repo, &config.Config{APIKeyCacheTTLSeconds: 60})
}

func keyManagerSession(orgID primitive.ObjectID) auth.Session {
	return auth.Session{
		UserID:         primitive.NewObjectID(),
		OrganizationID: orgID,
		Roles:          []permission.Role{permission.RoleOwner, permission.RoleAdmin, permission.RoleMember},
	}
}

func TestGenerateKeyReturnsPlainKeyOnce(t *testing.T) {
	repo := newFakeAPIKeyRepo()
	svc := apiKeyService(repo)
	session := keyManagerSession(primitive.NewObjectID())

	gen, err := svc.GenerateKey(context.Background(), session, "ci")
	require.NoError(t, err)

	assert.NotEmpty(t, gen.PlainKey)
	assert.Equal(t, "ci", gen.KeyName)

	stored := repo.keys[gen.KeyID]
	require.NotNil(t, stored)
	assert.NotEqual(t, gen.PlainKey, stored.Hash)
	assert.True(t, util.VerifyAPIKey(gen.PlainKey, stored.Hash))
}

func TestGenerateKeyDeniedForAPIKeySession(t *testing.T) {
	svc := apiKeyService(newFakeAPIKeyRepo())
	machine := auth.Session{
		OrganizationID: primitive.NewObjectID(),
		Roles:          []permission.Role{permission.RoleAPIKey},
	}

	_, err := svc.GenerateKey(context.Background(), machine, "escalate")
	assert.Equal(t, apperror.CodePermissionDenied, apperror.CodeOf(err))
}

func TestValidateKeyCachesResult(t *testing.T) {
	plain, hash, err := generateAndHash()
	require.NoError(t, err)

	key := &model.APIKey{
		ID:             primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		Hash:           hash,
		IsActive:       true,
	}
	repo := newFakeAPIKeyRepo(key)
	svc := apiKeyService(repo)

	got, err := svc.ValidateKey(context.Background(), plain)
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.Equal(t, 1, repo.findActives)

	// Second validation inside the TTL is served from cache.
	_, err = svc.ValidateKey(context.Background(), plain)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findActives)
}

func TestValidateKeyRejectsUnknown(t *testing.T) {
	svc := apiKeyService(newFakeAPIKeyRepo())

	_, err := svc.ValidateKey(context.Background(), "tl_not_a_real_key")
	assert.Equal(t, apperror.CodeInvalidCredentials, apperror.CodeOf(err))
}

func TestRevokeKeyScopedToOrganization(t *testing.T) {
	orgA := primitive.NewObjectID()
	orgB := primitive.NewObjectID()
	key := &model.APIKey{ID: primitive.NewObjectID(), OrganizationID: orgA, IsActive: true}
	repo := newFakeAPIKeyRepo(key)
	svc := apiKeyService(repo)

	err := svc.RevokeKey(context.Background(), keyManagerSession(orgB), key.ID.Hex())
	assert.Equal(t, apperror.CodeAPIKeyNotFound, apperror.CodeOf(err))
	assert.Len(t, repo.keys, 1)

	require.NoError(t, svc.RevokeKey(context.Background(), keyManagerSession(orgA), key.ID.Hex()))
	assert.Empty(t, repo.keys)
}

func TestSetActiveTogglesFlag(t *testing.T) {
	orgID := primitive.NewObjectID()
	key := &model.APIKey{ID: primitive.NewObjectID(), OrganizationID: orgID, IsActive: true}
	repo := newFakeAPIKeyRepo(key)
	svc := apiKeyService(repo)

	require.NoError(t, svc.SetActive(context.Background(), keyManagerSession(orgID), key.ID.Hex(), false))
	assert.False(t, key.IsActive)
}
