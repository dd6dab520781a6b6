package middleware

import (
	"net/http"
	"strings"

	"taglayer/internal/auth"
	"taglayer/internal/model"
	"taglayer/internal/repository"
	"taglayer/internal/service"
	"taglayer/pkg/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller into a session. Two credential
// kinds are accepted: a Bearer JWT issued at login, or an organization
// API key in X-API-Key. The resulting session carries the caller's
// organization and roles and is stored in the gin context.
func AuthMiddleware(jwt *auth.JWTService, users repository.IUserRepository, orgs repository.IOrganizationRepository, apiKeys *service.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
			key, err := apiKeys.ValidateKey(c.Request.Context(), apiKey)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unauthorized", "invalid API key"))
				return
			}
			c.Set(auth.SessionKey, auth.SessionForAPIKey(key))
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unauthorized", "missing credentials"))
			return
		}

		claims, err := jwt.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unauthorized", "invalid or expired token"))
			return
		}

		userID, err := util.ParseObjectID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unauthorized", "invalid token subject"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Unauthorized", "unknown user"))
			return
		}

		org, err := orgs.FindByID(c.Request.Context(), user.OrganizationID)
		if err != nil || org == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Forbidden", "user has no organization"))
			return
		}

		c.Set(auth.SessionKey, auth.SessionForUser(user, org))
		c.Next()
	}
}

// SessionFrom extracts the session stored by AuthMiddleware.
func SessionFrom(c *gin.Context) auth.Session {
	v, _ := c.Get(auth.SessionKey)
	session, _ := v.(auth.Session)
	return session
}
