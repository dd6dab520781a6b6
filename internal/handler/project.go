package handler

import (
	"net/http"

	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"
	"taglayer/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// Create adds a project to the caller's organization
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.AddProjectBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Project created", project.ToAPI()))
}

// List returns the organization's projects, filtered and paginated
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)
	p := pagination.FromQuery(c.Request.URL.Query())

	projects, total, err := h.service.List(c.Request.Context(), session, p)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]model.ProjectResponse, len(projects))
	for i, proj := range projects {
		data[i] = proj.ToAPI()
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(data, p.Page, p.PageSize, p.Pages(total), total))
}

// Get returns a single project
// @Router /projects/:id [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	session := middleware.SessionFrom(c)

	project, err := h.service.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Project found", project.ToAPI()))
}

// Update applies a partial update to a project
// @Router /projects/:id [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.UpdateProjectBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	project, err := h.service.Update(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Project updated", project.ToAPI()))
}

// Delete removes a project and returns the deleted document
// @Router /projects/:id [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	session := middleware.SessionFrom(c)

	project, err := h.service.Delete(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Project deleted", project.ToAPI()))
}
