package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/dto"
	"github.com/tasknity/tasknity-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type CreateProjectRequest struct {
	Title     string   `json:"title" binding:"required"`
	IsPublic  *bool    `json:"isPublic"`
	MemberIDs []string `json:"memberIds"`
}

type UpdateProjectRequest struct {
	Title     *string   `json:"title"`
	Progress  *int      `json:"progress" binding:"omitempty,gte=0,lte=100"`
	IsPublic  *bool     `json:"isPublic"`
	MemberIDs *[]string `json:"memberIds"`
}

// List returns the projects the caller may see, newest first.
func (h *ProjectHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	items, err := h.projectService.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.ProjectDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ToProjectListItemDTO(item.Project, item.TaskCount))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Title:     req.Title,
		IsPublic:  req.IsPublic,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectDetailDTO(*project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), services.UpdateProjectInput{
		Title:     req.Title,
		Progress:  req.Progress,
		IsPublic:  req.IsPublic,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Project")
}
