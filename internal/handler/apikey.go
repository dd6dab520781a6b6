package handler

import (
	"net/http"

	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"

	"github.com/gin-gonic/gin"
)

// APIKeyHandler handles organization API key endpoints
type APIKeyHandler struct {
	service *service.APIKeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler
func NewAPIKeyHandler(svc *service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{service: svc}
}

// Generate creates a new API key for the caller's organization
// @Router /orgs/me/apikeys [post]
func (h *APIKeyHandler) Generate(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.GenerateAPIKeyBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	resp, err := h.service.GenerateKey(c.Request.Context(), session, req.KeyName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("API key created", resp))
}

// List returns all API keys for the caller's organization
// @Router /orgs/me/apikeys [get]
func (h *APIKeyHandler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)

	keys, err := h.service.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("API keys found", keys))
}

// Revoke deletes an API key
// @Router /orgs/me/apikeys/:keyId [delete]
func (h *APIKeyHandler) Revoke(c *gin.Context) {
	session := middleware.SessionFrom(c)

	if err := h.service.RevokeKey(c.Request.Context(), session, c.Param("keyId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("API key revoked", nil))
}

// Activate toggles an API key's active flag
// @Router /orgs/me/apikeys/:keyId/activate [post]
func (h *APIKeyHandler) Activate(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if err := h.service.SetActive(c.Request.Context(), session, c.Param("keyId"), req.IsActive); err != nil {
		respondError(c, err)
		return
	}

	msg := "API key deactivated"
	if req.IsActive {
		msg = "API key activated"
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(msg, nil))
}
