package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/dto"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ProjectID   string   `json:"projectId" binding:"required"`
	Status      string   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Deadline    *string  `json:"deadline"`
	Classified  bool     `json:"classified"`
	IsDraft     bool     `json:"isDraft"`
	AssigneeIDs []string `json:"assigneeIds"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Deadline    *string   `json:"deadline"`
	Classified  *bool     `json:"classified"`
	IsDraft     *bool     `json:"isDraft"`
	AssigneeIDs *[]string `json:"assigneeIds"`
}

func respondTasks(c *gin.Context, tasks []models.Task, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// List returns the task board: no classified tasks and no drafts, for every
// role. An optional projectId query narrows it to one project.
func (h *TaskHandler) List(c *gin.Context) {
	var projectID *string
	if id := c.Query("projectId"); id != "" {
		projectID = &id
	}
	tasks, err := h.taskService.ListBoard(c.Request.Context(), projectID)
	respondTasks(c, tasks, err)
}

func (h *TaskHandler) ListClassified(c *gin.Context) {
	tasks, err := h.taskService.ListClassified(c.Request.Context())
	respondTasks(c, tasks, err)
}

func (h *TaskHandler) ListByProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	tasks, err := h.taskService.ListByProject(c.Request.Context(), p, c.Param("projectId"))
	respondTasks(c, tasks, err)
}

func (h *TaskHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Classified:  req.Classified,
		IsDraft:     req.IsDraft,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Classified:  req.Classified,
		IsDraft:     req.IsDraft,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Task")
}
