package dto

import (
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
)

type AttendanceDTO struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Date      time.Time               `json:"date"`
	Status    models.AttendanceStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	User      *UserSummaryDTO         `json:"user,omitempty"`
}

func ToAttendanceDTO(a models.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		User:      ToUserSummaryDTO(a.User),
	}
}

func ToAttendanceDTOs(records []models.Attendance) []AttendanceDTO {
	out := make([]AttendanceDTO, len(records))
	for i, r := range records {
		out[i] = ToAttendanceDTO(r)
	}
	return out
}

type LeaveDTO struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Reason    string               `json:"reason"`
	Date      time.Time            `json:"date"`
	Status    models.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	User      *UserSummaryDTO      `json:"user,omitempty"`
}

func ToLeaveDTO(l models.Leave) LeaveDTO {
	return LeaveDTO{
		ID:        l.ID,
		UserID:    l.UserID,
		Reason:    l.Reason,
		Date:      l.Date,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		User:      ToUserSummaryDTO(l.User),
	}
}

func ToLeaveDTOs(leaves []models.Leave) []LeaveDTO {
	out := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		out[i] = ToLeaveDTO(l)
	}
	return out
}

type ExpenseDTO struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Title     string               `json:"title"`
	Category  string               `json:"category"`
	Amount    float64              `json:"amount"`
	Date      time.Time            `json:"date"`
	Status    models.RequestStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	User      *UserSummaryDTO      `json:"user,omitempty"`
}

func ToExpenseDTO(e models.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		User:      ToUserSummaryDTO(e.User),
	}
}

func ToExpenseDTOs(expenses []models.Expense) []ExpenseDTO {
	out := make([]ExpenseDTO, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseDTO(e)
	}
	return out
}

type KudosDTO struct {
	ID         string          `json:"id"`
	FromUserID string          `json:"fromUserId"`
	ToUserID   string          `json:"toUserId"`
	Message    string          `json:"message"`
	Emoji      string          `json:"emoji"`
	CreatedAt  time.Time       `json:"createdAt"`
	FromUser   *UserSummaryDTO `json:"fromUser,omitempty"`
	ToUser     *UserSummaryDTO `json:"toUser,omitempty"`
}

func ToKudosDTO(k models.Kudos) KudosDTO {
	return KudosDTO{
		ID:         k.ID,
		FromUserID: k.FromUserID,
		ToUserID:   k.ToUserID,
		Message:    k.Message,
		Emoji:      k.Emoji,
		CreatedAt:  k.CreatedAt,
		FromUser:   ToUserSummaryDTO(k.FromUser),
		ToUser:     ToUserSummaryDTO(k.ToUser),
	}
}

func ToKudosDTOs(kudos []models.Kudos) []KudosDTO {
	out := make([]KudosDTO, len(kudos))
	for i, k := range kudos {
		out[i] = ToKudosDTO(k)
	}
	return out
}

type MeetingDTO struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	Location    string           `json:"location"`
	Link        string           `json:"link"`
	OrganizerID string           `json:"organizerId"`
	CreatedAt   time.Time        `json:"createdAt"`
	Organizer   *UserSummaryDTO  `json:"organizer,omitempty"`
	Attendees   []UserSummaryDTO `json:"attendees"`
}

func ToMeetingDTO(m models.Meeting) MeetingDTO {
	attendees := make([]models.User, len(m.Attendees))
	for i, a := range m.Attendees {
		attendees[i] = a.User
	}
	return MeetingDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Location:    m.Location,
		Link:        m.Link,
		OrganizerID: m.OrganizerID,
		CreatedAt:   m.CreatedAt,
		Organizer:   ToUserSummaryDTO(m.Organizer),
		Attendees:   toUserSummaries(attendees),
	}
}

func ToMeetingDTOs(meetings []models.Meeting) []MeetingDTO {
	out := make([]MeetingDTO, len(meetings))
	for i, m := range meetings {
		out[i] = ToMeetingDTO(m)
	}
	return out
}
