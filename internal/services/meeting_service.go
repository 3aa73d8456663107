package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

type MeetingService struct {
	meetingRepo repository.MeetingRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewMeetingService(meetingRepo repository.MeetingRepository, userRepo repository.UserRepository) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

type CreateMeetingInput struct {
	OrganizerID string
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Location    string
	Link        string
	AttendeeIDs []string
}

type UpdateMeetingInput struct {
	Title       *string
	Description *string
	StartTime   *string
	EndTime     *string
	Location    *string
	Link        *string
	AttendeeIDs *[]string
}

func (s *MeetingService) List(ctx context.Context) ([]models.Meeting, error) {
	return s.list(ctx, repository.MeetingFilter{})
}

func (s *MeetingService) Upcoming(ctx context.Context) ([]models.Meeting, error) {
	now := s.now()
	return s.list(ctx, repository.MeetingFilter{StartsAfter: &now, Limit: constants.UpcomingMeetingsLimit})
}

// Mine returns meetings the user organizes or attends.
func (s *MeetingService) Mine(ctx context.Context, userID string) ([]models.Meeting, error) {
	return s.list(ctx, repository.MeetingFilter{Participant: &userID})
}

func (s *MeetingService) list(ctx context.Context, filter repository.MeetingFilter) ([]models.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

func (s *MeetingService) Get(ctx context.Context, id string) (*models.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (s *MeetingService) Create(ctx context.Context, input CreateMeetingInput) (*models.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}
	start, err := parseTime(input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime(input.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	if err := ensureUsersExist(ctx, s.userRepo, input.AttendeeIDs); err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		Title:       title,
		Description: input.Description,
		StartTime:   start,
		EndTime:     end,
		Location:    input.Location,
		Link:        input.Link,
		OrganizerID: input.OrganizerID,
	}
	if err := s.meetingRepo.Create(ctx, meeting, input.AttendeeIDs); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return s.Get(ctx, meeting.ID)
}

func (s *MeetingService) Update(ctx context.Context, id string, input UpdateMeetingInput) (*models.Meeting, error) {
	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		meeting.Title = title
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.StartTime != nil {
		if meeting.StartTime, err = parseTime(*input.StartTime); err != nil {
			return nil, err
		}
	}
	if input.EndTime != nil {
		if meeting.EndTime, err = parseTime(*input.EndTime); err != nil {
			return nil, err
		}
	}
	if !meeting.EndTime.After(meeting.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if input.Location != nil {
		meeting.Location = *input.Location
	}
	if input.Link != nil {
		meeting.Link = *input.Link
	}
	if input.AttendeeIDs != nil {
		if err := ensureUsersExist(ctx, s.userRepo, *input.AttendeeIDs); err != nil {
			return nil, err
		}
	}

	if err := s.meetingRepo.Update(ctx, meeting, input.AttendeeIDs); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *MeetingService) Delete(ctx context.Context, id string) error {
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}
