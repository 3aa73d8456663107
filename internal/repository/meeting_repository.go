package repository

import (
	"context"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMeetingRepository is a GORM implementation of MeetingRepository
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &GormMeetingRepository{db: db}
}

func preloadMeetingPeople(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Organizer", preloadUserSummary).
		Preload("Attendees").
		Preload("Attendees.User", preloadUserSummary)
}

func (r *GormMeetingRepository) List(ctx context.Context, filter MeetingFilter) ([]models.Meeting, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Meeting{})

	if filter.StartsAfter != nil {
		query = query.Where("meetings.start_time >= ?", *filter.StartsAfter)
	}
	if filter.Participant != nil {
		attendeeSubQuery := db.Model(&models.MeetingAttendee{}).
			Select("1").
			Where("meeting_attendees.meeting_id = meetings.id").
			Where("meeting_attendees.user_id = ?", *filter.Participant)
		query = query.Where("meetings.organizer_id = ? OR EXISTS (?)", *filter.Participant, attendeeSubQuery)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var meetings []models.Meeting
	err := query.
		Scopes(preloadMeetingPeople).
		Order("meetings.start_time ASC").
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) FindByID(ctx context.Context, id string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.WithContext(ctx).
		Scopes(preloadMeetingPeople).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *GormMeetingRepository) Create(ctx context.Context, meeting *models.Meeting, attendeeIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meeting).Error; err != nil {
			return err
		}
		return insertAttendees(tx, meeting.ID, attendeeIDs)
	})
}

func (r *GormMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, attendeeIDs *[]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(meeting).Error; err != nil {
			return err
		}
		if attendeeIDs == nil {
			return nil
		}
		if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&models.MeetingAttendee{}).Error; err != nil {
			return err
		}
		return insertAttendees(tx, meeting.ID, *attendeeIDs)
	})
}

func insertAttendees(tx *gorm.DB, meetingID string, userIDs []string) error {
	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return nil
	}
	attendees := make([]models.MeetingAttendee, len(userIDs))
	for i, userID := range userIDs {
		attendees[i] = models.MeetingAttendee{MeetingID: meetingID, UserID: userID}
	}
	return tx.Omit(clause.Associations).Create(&attendees).Error
}

func (r *GormMeetingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.MeetingAttendee{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Meeting{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
