package handler

import (
	"net/http"

	"taglayer/internal/middleware"
	"taglayer/internal/model"
	"taglayer/internal/service"
	"taglayer/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	service *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{service: svc}
}

// Create adds a tag to the caller's organization
// @Router /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.AddTagBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	tag, err := h.service.Create(c.Request.Context(), session, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Tag created", tag.ToAPI()))
}

// List returns the organization's tags, filtered and paginated. Query
// parameters other than page and pageSize are treated as filters.
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	session := middleware.SessionFrom(c)
	p := pagination.FromQuery(c.Request.URL.Query())

	tags, total, err := h.service.List(c.Request.Context(), session, p)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]model.TagResponse, len(tags))
	for i, t := range tags {
		data[i] = t.ToAPI()
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(data, p.Page, p.PageSize, p.Pages(total), total))
}

// Get returns a single tag
// @Router /tags/:id [get]
func (h *TagHandler) Get(c *gin.Context) {
	session := middleware.SessionFrom(c)

	tag, err := h.service.Get(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Tag found", tag.ToAPI()))
}

// Update applies a partial update to a tag
// @Router /tags/:id [patch]
func (h *TagHandler) Update(c *gin.Context) {
	session := middleware.SessionFrom(c)

	var req model.UpdateTagBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	tag, err := h.service.Update(c.Request.Context(), session, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Tag updated", tag.ToAPI()))
}

// Delete removes a tag and returns the deleted document
// @Router /tags/:id [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	session := middleware.SessionFrom(c)

	tag, err := h.service.Delete(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Tag deleted", tag.ToAPI()))
}
