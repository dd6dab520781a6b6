package auth

import (
	"testing"

	"taglayer/internal/apperror"
	"taglayer/internal/config"
	"taglayer/internal/model"
	"taglayer/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testJWTService(ttlHours int) *JWTService {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = ttlHours
	return NewJWTService(cfg)
}

func TestGenerateAndVerifyToken(t *testing.T) {
	svc := testJWTService(1)

	token, err := svc.GenerateToken("user123", "ada@example.com")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "taglayer", claims.Issuer)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := testJWTService(-1)

	token, err := svc.GenerateToken("user123", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Equal(t, apperror.CodeTokenExpired, apperror.CodeOf(err))
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := testJWTService(1).GenerateToken("user123", "ada@example.com")
	require.NoError(t, err)

	other := testJWTService(1)
	other.secret = []byte("different")

	_, err = other.VerifyToken(token)
	assert.Equal(t, apperror.CodeInvalidCredentials, apperror.CodeOf(err))
}

func TestSessionForUserRoles(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	org := &model.Organization{
		ID:         primitive.NewObjectID(),
		CreatorID:  creator,
		MembersIDs: []primitive.ObjectID{creator, member},
		AdminsIDs:  []primitive.ObjectID{creator},
	}

	s := SessionForUser(&model.User{ID: creator}, org)
	assert.ElementsMatch(t,
		[]permission.Role{permission.RoleOwner, permission.RoleAdmin, permission.RoleMember},
		s.Roles)

	s = SessionForUser(&model.User{ID: member}, org)
	assert.Equal(t, []permission.Role{permission.RoleMember}, s.Roles)
}

func TestSessionForAPIKey(t *testing.T) {
	key := &model.APIKey{
		OrganizationID: primitive.NewObjectID(),
		CreatedBy:      primitive.NewObjectID(),
	}

	s := SessionForAPIKey(key)
	assert.Equal(t, key.OrganizationID, s.OrganizationID)
	assert.Equal(t, []permission.Role{permission.RoleAPIKey}, s.Roles)
}
