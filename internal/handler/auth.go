package handler

import (
	"net/http"

	"taglayer/internal/auth"
	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and the caller's own account
type AuthHandler struct {
	users   *service.UserService
	orgs    *service.OrganizationService
	apiKeys *service.APIKeyService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *service.UserService, orgs *service.OrganizationService, apiKeys *service.APIKeyService) *AuthHandler {
	return &AuthHandler{users: users, orgs: orgs, apiKeys: apiKeys}
}

// Register provisions an account, its organization and a default API key
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	org, err := h.orgs.CreateForUser(c.Request.Context(), user, req.OrgName)
	if err != nil {
		respondError(c, err)
		return
	}

	gen, err := h.apiKeys.GenerateKey(c.Request.Context(), auth.SessionForUser(user, org), "default")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Provisioned", gin.H{
		"user":   user.ToAPI(),
		"org":    org.ToAPI(),
		"apiKey": gen,
	}))
}

// Login verifies credentials and returns an access token
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Logged in", gin.H{
		"token": token,
		"user":  user.ToAPI(),
	}))
}

// Me returns the caller's account
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.SessionFrom(c)

	user, err := h.users.Get(c.Request.Context(), session.UserID.Hex())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("User found", user.ToAPI()))
}

// UpdateMe applies a partial update to the caller's account
// @Router /users/me [patch]
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.UpdateUserBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("User updated", user.ToAPI()))
}
