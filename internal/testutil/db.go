// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tasknity/tasknity-api/internal/database"
	"github.com/tasknity/tasknity-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "User " + email,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project with the given members.
func CreateProject(t *testing.T, db *gorm.DB, title string, public bool, memberIDs ...string) *models.Project {
	t.Helper()

	project := &models.Project{Title: title, IsPublic: public}
	require.NoError(t, db.Create(project).Error)
	for _, id := range memberIDs {
		require.NoError(t, db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: id}).Error)
	}
	return project
}

// CreateTask inserts a task in projectID.
func CreateTask(t *testing.T, db *gorm.DB, projectID, title string, classified, draft bool) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:      title,
		ProjectID:  projectID,
		Status:     models.TaskStatusTodo,
		Priority:   models.PriorityMedium,
		Classified: classified,
		IsDraft:    draft,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
