package database

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

// Seed replaces all data with a small demo workspace: one account per role,
// three projects and a few days of activity.
func Seed(db *gorm.DB, log *slog.Logger, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		tables := Models()
		slices.Reverse(tables)
		for _, m := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}

		user := func(email, name string, role models.Role, team, phone string) models.User {
			return models.User{Email: email, Password: string(hash), Name: name, Role: role, Team: team, Phone: phone}
		}
		users := []models.User{
			user("owner@tasknity.com", "System Owner", models.RoleOwner, "Executive", "123-456-7890"),
			user("admin@tasknity.com", "Alice Carter", models.RoleAdmin, "Core", "123-456-7891"),
			user("brian@tasknity.com", "Brian Lee", models.RoleMember, "Frontend", "123-456-7892"),
			user("david@tasknity.com", "David Kim", models.RoleMember, "Backend", "123-456-7893"),
			user("viewer@tasknity.com", "Chloe Patel", models.RoleViewer, "Design", "123-456-7894"),
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		owner, admin, brian, david, viewer := users[0], users[1], users[2], users[3], users[4]

		projects := []models.Project{
			{Title: "Website Redesign", Progress: 70, IsPublic: true},
			{Title: "Mobile App 'Zenith'", Progress: 45, IsPublic: true},
			{Title: "API Development", Progress: 90, IsPublic: false},
		}
		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("failed to seed projects: %w", err)
		}
		website, mobile, api := projects[0], projects[1], projects[2]

		members := []models.ProjectMember{
			{ProjectID: website.ID, UserID: admin.ID},
			{ProjectID: website.ID, UserID: brian.ID},
			{ProjectID: website.ID, UserID: david.ID},
			{ProjectID: mobile.ID, UserID: brian.ID},
			{ProjectID: mobile.ID, UserID: viewer.ID},
			{ProjectID: api.ID, UserID: admin.ID},
			{ProjectID: api.ID, UserID: david.ID},
		}
		if err := tx.Create(&members).Error; err != nil {
			return fmt.Errorf("failed to seed project members: %w", err)
		}

		task := func(title, description string, status models.TaskStatus, priority models.Priority, projectID string) models.Task {
			return models.Task{Title: title, Description: description, Status: status, Priority: priority, ProjectID: projectID}
		}
		tasks := []models.Task{
			task("Setup Landing Page", "Create the main landing page with the new design.", models.TaskStatusInProgress, models.PriorityHigh, website.ID),
			task("Fix Login Bug", "Users are reporting issues when logging in with special characters.", models.TaskStatusTodo, models.PriorityMedium, mobile.ID),
			task("Design dashboard mockups", "Create mockups for the new analytics dashboard.", models.TaskStatusTodo, models.PriorityHigh, website.ID),
			task("Implement push notifications", "Add push notification functionality to the mobile app.", models.TaskStatusInProgress, models.PriorityMedium, mobile.ID),
			task("Deploy staging environment", "Set up and deploy the staging environment for testing.", models.TaskStatusDone, models.PriorityLow, api.ID),
			task("Write API documentation", "Document all endpoints for the new API.", models.TaskStatusDone, models.PriorityMedium, api.ID),
			task("Classified Security Audit", "Review security vulnerabilities in the authentication system.", models.TaskStatusInProgress, models.PriorityHigh, api.ID),
		}
		tasks[6].Classified = true
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}

		assignments := []models.TaskAssignment{
			{TaskID: tasks[0].ID, UserID: brian.ID},
			{TaskID: tasks[1].ID, UserID: brian.ID},
			{TaskID: tasks[2].ID, UserID: david.ID},
			{TaskID: tasks[4].ID, UserID: david.ID},
			{TaskID: tasks[6].ID, UserID: admin.ID},
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("failed to seed task assignments: %w", err)
		}

		today := utils.StartOfDayUTC(now)
		attendance := []models.Attendance{
			{UserID: admin.ID, Date: today, Status: models.AttendancePresent},
			{UserID: brian.ID, Date: today, Status: models.AttendanceLate},
			{UserID: david.ID, Date: today, Status: models.AttendancePresent},
		}
		if err := tx.Create(&attendance).Error; err != nil {
			return fmt.Errorf("failed to seed attendance: %w", err)
		}

		leaves := []models.Leave{
			{UserID: brian.ID, Reason: "Family emergency", Date: today.AddDate(0, 0, 1), Status: models.RequestPending},
			{UserID: viewer.ID, Reason: "Doctor appointment", Date: today.AddDate(0, 0, 2), Status: models.RequestApproved},
		}
		if err := tx.Create(&leaves).Error; err != nil {
			return fmt.Errorf("failed to seed leaves: %w", err)
		}

		expenses := []models.Expense{
			{UserID: admin.ID, Title: "AWS Hosting", Category: "Infrastructure", Amount: 120, Date: today, Status: models.RequestApproved},
			{UserID: brian.ID, Title: "Team Lunch", Category: "HR", Amount: 85, Date: today, Status: models.RequestPending},
			{UserID: admin.ID, Title: "Figma Subscription", Category: "Design", Amount: 45, Date: today, Status: models.RequestApproved},
		}
		if err := tx.Create(&expenses).Error; err != nil {
			return fmt.Errorf("failed to seed expenses: %w", err)
		}

		kudos := []models.Kudos{
			{FromUserID: admin.ID, ToUserID: brian.ID, Message: "Great work on the landing page!", Emoji: constants.DefaultKudosEmoji},
			{FromUserID: owner.ID, ToUserID: david.ID, Message: "Thanks for shipping staging early.", Emoji: "🚀"},
		}
		if err := tx.Create(&kudos).Error; err != nil {
			return fmt.Errorf("failed to seed kudos: %w", err)
		}

		start := today.AddDate(0, 0, 1).Add(10 * time.Hour)
		meeting := models.Meeting{
			Title:       "Sprint planning",
			Description: "Plan the next two weeks.",
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Location:    "Room 4",
			OrganizerID: admin.ID,
		}
		if err := tx.Create(&meeting).Error; err != nil {
			return fmt.Errorf("failed to seed meeting: %w", err)
		}
		attendees := []models.MeetingAttendee{
			{MeetingID: meeting.ID, UserID: brian.ID},
			{MeetingID: meeting.ID, UserID: david.ID},
		}
		if err := tx.Create(&attendees).Error; err != nil {
			return fmt.Errorf("failed to seed meeting attendees: %w", err)
		}

		for _, u := range users {
			log.Info("seeded account", "email", u.Email, "role", u.Role)
		}
		return nil
	})
}
