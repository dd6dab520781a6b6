package handler

import (
	"net/http"

	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"
	"taglayer/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles the caller's organization endpoints
type OrganizationHandler struct {
	service *service.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(svc *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: svc}
}

// Get returns the caller's organization
// @Router /orgs/me [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	session := middleware.SessionFrom(c)

	org, err := h.service.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization found", org.ToAPI()))
}

// Update applies a partial update to the caller's organization
// @Router /orgs/me [patch]
func (h *OrganizationHandler) Update(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.UpdateOrganizationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	org, err := h.service.Update(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization updated", org.ToAPI()))
}

// Delete removes the caller's organization and returns the deleted document
// @Router /orgs/me [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	session := middleware.SessionFrom(c)

	org, err := h.service.Delete(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Organization deleted", org.ToAPI()))
}

// AddMember adds an existing user to the organization by email
// @Router /orgs/me/members [post]
func (h *OrganizationHandler) AddMember(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.AddMemberBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	org, err := h.service.AddMember(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Member added", org.ToAPI()))
}

// RemoveMember removes a user from the organization
// @Router /orgs/me/members/:userId [delete]
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	session := middleware.SessionFrom(c)

	org, err := h.service.RemoveMember(c.Request.Context(), session, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Member removed", org.ToAPI()))
}

// ListMembers returns the organization's users, paginated
// @Router /orgs/me/members [get]
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	session := middleware.SessionFrom(c)
	p := pagination.FromQuery(c.Request.URL.Query())

	users, total, err := h.service.ListMembers(c.Request.Context(), session, p)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]model.UserResponse, len(users))
	for i, u := range users {
		data[i] = u.ToAPI()
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(data, p.Page, p.PageSize, p.Pages(total), total))
}
