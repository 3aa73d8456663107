package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/dto"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/services"
	"github.com/tasknity/tasknity-api/internal/utils"
)

// AttendanceHandler serves /attendance.
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type MarkAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE HALF_DAY"`
	Date   string `json:"date"`
}

func respondAttendance(c *gin.Context, records []models.Attendance, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAttendanceDTOs(records))
}

// Mark records the caller's attendance for one UTC day.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req MarkAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.Mark(c.Request.Context(), services.MarkAttendanceInput{
		UserID: p.UserID,
		Status: req.Status,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttendanceDTO(*record))
}

func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.attendanceService.List(c.Request.Context())
	respondAttendance(c, records, err)
}

func (h *AttendanceHandler) Today(c *gin.Context) {
	records, err := h.attendanceService.Today(c.Request.Context())
	respondAttendance(c, records, err)
}

func (h *AttendanceHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	records, err := h.attendanceService.ListByUser(c.Request.Context(), p.UserID)
	respondAttendance(c, records, err)
}

func (h *AttendanceHandler) ByUser(c *gin.Context) {
	records, err := h.attendanceService.ListByUser(c.Request.Context(), c.Param("userId"))
	respondAttendance(c, records, err)
}

// DecisionRequest carries the new status of a leave or expense.
type DecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// LeaveHandler serves /leaves.
type LeaveHandler struct {
	leaveService *services.LeaveService
}

func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

type CreateLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

func (h *LeaveHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateLeaveRequest
	if !bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveService.Create(c.Request.Context(), services.CreateLeaveInput{
		UserID: p.UserID,
		Reason: req.Reason,
		Date:   req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeaveDTO(*leave))
}

func (h *LeaveHandler) List(c *gin.Context) {
	leaves, err := h.leaveService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveDTOs(leaves))
}

func (h *LeaveHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	leaves, err := h.leaveService.ListMine(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveDTOs(leaves))
}

func (h *LeaveHandler) Decide(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveService.Decide(c.Request.Context(), p, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeaveDTO(*leave))
}

// ExpenseHandler serves /expenses.
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type CreateExpenseRequest struct {
	Title    string   `json:"title" binding:"required"`
	Category string   `json:"category"`
	Amount   *float64 `json:"amount" binding:"required,gte=0"`
	Date     string   `json:"date" binding:"required"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), services.CreateExpenseInput{
		UserID:   p.UserID,
		Title:    req.Title,
		Category: req.Category,
		Amount:   *req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseDTO(*expense))
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.expenseService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseDTOs(expenses))
}

func (h *ExpenseHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	expenses, err := h.expenseService.ListMine(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseDTOs(expenses))
}

func (h *ExpenseHandler) Decide(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req DecisionRequest
	if !bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.Decide(c.Request.Context(), p, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseDTO(*expense))
}

// KudosHandler serves /kudos.
type KudosHandler struct {
	kudosService *services.KudosService
}

func NewKudosHandler(kudosService *services.KudosService) *KudosHandler {
	return &KudosHandler{kudosService: kudosService}
}

type GiveKudosRequest struct {
	ToUserID string `json:"toUserId" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Emoji    string `json:"emoji"`
}

// List returns the kudos feed. page and limit query parameters select a
// page; the default page holds the latest 50.
func (h *KudosHandler) List(c *gin.Context) {
	page := utils.GetPaginationParams(c, constants.DefaultPageSize)
	kudos, err := h.kudosService.Recent(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToKudosDTOs(kudos))
}

func (h *KudosHandler) Leaderboard(c *gin.Context) {
	entries, err := h.kudosService.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *KudosHandler) ByUser(c *gin.Context) {
	kudos, err := h.kudosService.ForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToKudosDTOs(kudos))
}

func (h *KudosHandler) Give(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req GiveKudosRequest
	if !bindJSON(c, &req) {
		return
	}

	kudos, err := h.kudosService.Give(c.Request.Context(), services.GiveKudosInput{
		FromUserID: p.UserID,
		ToUserID:   req.ToUserID,
		Message:    req.Message,
		Emoji:      req.Emoji,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToKudosDTO(*kudos))
}

// MeetingHandler serves /meetings.
type MeetingHandler struct {
	meetingService *services.MeetingService
}

func NewMeetingHandler(meetingService *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

type CreateMeetingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime" binding:"required"`
	EndTime     string   `json:"endTime" binding:"required"`
	Location    string   `json:"location"`
	Link        string   `json:"link"`
	AttendeeIDs []string `json:"attendeeIds"`
}

type UpdateMeetingRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	StartTime   *string   `json:"startTime"`
	EndTime     *string   `json:"endTime"`
	Location    *string   `json:"location"`
	Link        *string   `json:"link"`
	AttendeeIDs *[]string `json:"attendeeIds"`
}

func respondMeetings(c *gin.Context, meetings []models.Meeting, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingDTOs(meetings))
}

func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.meetingService.List(c.Request.Context())
	respondMeetings(c, meetings, err)
}

func (h *MeetingHandler) Upcoming(c *gin.Context) {
	meetings, err := h.meetingService.Upcoming(c.Request.Context())
	respondMeetings(c, meetings, err)
}

func (h *MeetingHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	meetings, err := h.meetingService.Mine(c.Request.Context(), p.UserID)
	respondMeetings(c, meetings, err)
}

func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.meetingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

func (h *MeetingHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateMeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	meeting, err := h.meetingService.Create(c.Request.Context(), services.CreateMeetingInput{
		OrganizerID: p.UserID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Link:        req.Link,
		AttendeeIDs: req.AttendeeIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMeetingDTO(*meeting))
}

func (h *MeetingHandler) Update(c *gin.Context) {
	var req UpdateMeetingRequest
	if !bindJSON(c, &req) {
		return
	}

	meeting, err := h.meetingService.Update(c.Request.Context(), c.Param("id"), services.UpdateMeetingInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Link:        req.Link,
		AttendeeIDs: req.AttendeeIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingDTO(*meeting))
}

func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.meetingService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Meeting")
}
