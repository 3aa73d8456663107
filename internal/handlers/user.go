package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/dto"
	"github.com/tasknity/tasknity-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateUserRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2"`
	Team    *string `json:"team"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Role    *string `json:"role"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// Me returns the caller with their projects and tasks.
func (h *UserHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	h.detail(c, p.UserID)
}

func (h *UserHandler) Get(c *gin.Context) {
	h.detail(c, c.Param("id"))
}

func (h *UserHandler) detail(c *gin.Context, id string) {
	detail, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDetailDTO(detail.User, detail.Projects, detail.Tasks))
}

// Update changes profile fields or the role. A new role only shows up in
// tokens issued afterwards.
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), services.UpdateUserInput{
		Name:    req.Name,
		Team:    req.Team,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "User")
}
