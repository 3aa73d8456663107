package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

// AttendanceService records one attendance mark per user per UTC day.
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for "today".
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

type MarkAttendanceInput struct {
	UserID string
	Status string
	// Date is RFC3339 or YYYY-MM-DD; empty means today.
	Date string
}

func parseAttendanceStatus(s string) (models.AttendanceStatus, error) {
	switch status := models.AttendanceStatus(strings.ToUpper(s)); status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceHalfDay:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Mark inserts the caller's mark for the day. The day is the UTC calendar
// day of the given instant. A second mark for the same day is a conflict,
// detected by the storage unique index rather than a read-before-write.
func (s *AttendanceService) Mark(ctx context.Context, input MarkAttendanceInput) (*models.Attendance, error) {
	status, err := parseAttendanceStatus(input.Status)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if input.Date != "" {
		if at, err = utils.ParseDate(input.Date); err != nil {
			return nil, ErrInvalidDate
		}
	}

	record := &models.Attendance{
		UserID: input.UserID,
		Date:   utils.StartOfDayUTC(at),
		Status: status,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAttendanceMarked
		}
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) List(ctx context.Context) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) Today(ctx context.Context) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.ListByDate(ctx, utils.StartOfDayUTC(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
