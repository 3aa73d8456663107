package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/constants"
	apierrors "github.com/tasknity/tasknity-api/internal/errors"
	"github.com/tasknity/tasknity-api/internal/middleware"
	"github.com/tasknity/tasknity-api/internal/services"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings lists every service error that has a client-facing status.
// Anything else is a 500 with a generic body.
var errorMappings = []errorMapping{
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{services.ErrForbidden, http.StatusForbidden, "Access denied"},

	{services.ErrPasswordTooShort, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)},
	{services.ErrNameTooShort, http.StatusBadRequest, fmt.Sprintf("Name must be at least %d characters", constants.MinNameLength)},
	{services.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
	{services.ErrInvalidPriority, http.StatusBadRequest, "Invalid priority"},
	{services.ErrInvalidDate, http.StatusBadRequest, "Invalid date"},
	{services.ErrInvalidTimeRange, http.StatusBadRequest, "End time must be after start time"},
	{services.ErrInvalidDecision, http.StatusBadRequest, "Status must be APPROVED or REJECTED"},
	{services.ErrUnknownUsers, http.StatusBadRequest, "One or more users do not exist"},
	{services.ErrSelfKudos, http.StatusBadRequest, "You cannot give kudos to yourself"},
	{services.ErrTitleEmpty, http.StatusBadRequest, "Title cannot be empty"},
	{services.ErrProgressOutOfRange, http.StatusBadRequest, "Progress must be between 0 and 100"},
	{services.ErrNegativeAmount, http.StatusBadRequest, "Amount cannot be negative"},

	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{services.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{services.ErrLeaveNotFound, http.StatusNotFound, "Leave request not found"},
	{services.ErrExpenseNotFound, http.StatusNotFound, "Expense not found"},
	{services.ErrMeetingNotFound, http.StatusNotFound, "Meeting not found"},
	{services.ErrInvoiceNotFound, http.StatusNotFound, "Invoice not found"},
	{services.ErrRecipientNotFound, http.StatusNotFound, "Recipient not found"},

	{services.ErrEmailTaken, http.StatusConflict, "Email already registered"},
	{services.ErrAttendanceMarked, http.StatusConflict, "Attendance already marked for this date"},
	{services.ErrRequestDecided, http.StatusConflict, "Request already decided"},
	{services.ErrInvoiceNumberTaken, http.StatusConflict, "Invoice number already exists"},
}

// respondError writes the response for a service error.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		switch m.status {
		case http.StatusUnauthorized:
			apierrors.InvalidCredentials(c)
		case http.StatusForbidden:
			apierrors.Forbidden(c, m.message)
		case http.StatusNotFound:
			apierrors.NotFound(c, m.message)
		case http.StatusConflict:
			apierrors.Conflict(c, m.message)
		default:
			apierrors.BadRequest(c, m.message)
		}
		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.Any("error", err),
	)
	apierrors.InternalError(c, "")
}

// bindJSON binds the request body into req, replying 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.ValidationFailed(c, err)
		return false
	}
	return true
}

// principal returns the caller set by the authentication guard. Handlers
// mounted without the guard get a 500.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.InternalError(c, "guard misconfigured")
	}
	return p, ok
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{
		"message": what + " deleted successfully",
	})
}

var registerValidators sync.Once

// RegisterValidators makes validation errors name fields by their JSON key.
func RegisterValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
