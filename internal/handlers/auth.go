package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/dto"
	apierrors "github.com/tasknity/tasknity-api/internal/errors"
	"github.com/tasknity/tasknity-api/internal/rbac"
	"github.com/tasknity/tasknity-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest has no role field: a role sent by the client is dropped
// during binding.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=2"`
	Team     string `json:"team"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a member account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Team:     req.Team,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !saveSessionToken(c, result.Token) {
		return
	}
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message:     "User registered successfully",
		User:        dto.ToUserDTO(*result.User),
		AccessToken: result.Token,
	})
}

// Login authenticates a user and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !saveSessionToken(c, result.Token) {
		return
	}
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message:     "Login successful",
		User:        dto.ToUserDTO(*result.User),
		AccessToken: result.Token,
	})
}

// Logout drops the cookie copy of the token. The token itself stays valid
// until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := c.Get(sessions.DefaultKey); ok {
		session := sessions.Default(c)
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to logout")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Permissions returns the capability set of the caller's role.
func (h *AuthHandler) Permissions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":        p.Role,
		"permissions": rbac.Capabilities(p.Role),
	})
}

// saveSessionToken keeps a copy of the token in the cookie session for
// browser clients. Routers without the sessions middleware skip it.
func saveSessionToken(c *gin.Context, token string) bool {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return true
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, token)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}
