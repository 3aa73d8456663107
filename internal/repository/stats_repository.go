package repository

import (
	"context"
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) Dashboard(ctx context.Context, window DashboardWindow) (*DashboardCounts, error) {
	db := r.db.WithContext(ctx)
	var out DashboardCounts

	counts := []struct {
		dest  *int64
		model any
		where string
		args  []any
	}{
		{&out.Users, &models.User{}, "", nil},
		{&out.Projects, &models.Project{}, "", nil},
		{&out.VisibleTasks, &models.Task{}, "classified = ? AND is_draft = ?", []any{false, false}},
		{&out.TasksDone, &models.Task{}, "status = ? AND classified = ?", []any{models.TaskStatusDone, false}},
		{&out.TasksInProgress, &models.Task{}, "status = ? AND classified = ?", []any{models.TaskStatusInProgress, false}},
		{&out.TasksTodo, &models.Task{}, "status = ? AND classified = ?", []any{models.TaskStatusTodo, false}},
		{&out.PendingExpenses, &models.Expense{}, "status = ?", []any{models.RequestPending}},
		{&out.PendingLeaves, &models.Leave{}, "status = ?", []any{models.RequestPending}},
		{&out.AttendanceToday, &models.Attendance{}, "date = ?", []any{window.Today}},
		{&out.KudosThisMonth, &models.Kudos{}, "created_at >= ?", []any{window.MonthStart}},
		{&out.MeetingsThisWeek, &models.Meeting{}, "start_time >= ?", []any{window.WeekStart}},
	}

	for _, c := range counts {
		query := db.Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", models.RequestApproved).
		Scan(&out.ApprovedExpenses).Error
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *GormStatsRepository) TopAssignees(ctx context.Context, limit int) ([]AssigneeCount, error) {
	var rows []AssigneeCount
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.name, users.email, users.team, COUNT(task_assignments.task_id) AS tasks_assigned").
		Joins("LEFT JOIN task_assignments ON task_assignments.user_id = users.id").
		Group("users.id, users.name, users.email, users.team").
		Order("tasks_assigned DESC, users.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *GormStatsRepository) ProjectProgress(ctx context.Context, limit int) ([]ProjectProgressRow, error) {
	db := r.db.WithContext(ctx)
	taskCount := db.Model(&models.Task{}).Select("COUNT(*)").Where("tasks.project_id = projects.id")
	memberCount := db.Model(&models.ProjectMember{}).Select("COUNT(*)").Where("project_members.project_id = projects.id")

	var rows []ProjectProgressRow
	err := db.Model(&models.Project{}).
		Select("projects.id, projects.title, projects.progress, (?) AS task_count, (?) AS member_count", taskCount, memberCount).
		Order("projects.progress DESC, projects.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *GormStatsRepository) CompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("status = ? AND updated_at >= ?", models.TaskStatusDone, since).
		Count(&count).Error
	return count, err
}

// AssignedTasks returns only the columns the insight rules read.
func (r *GormStatsRepository) AssignedTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("tasks.id", "tasks.status", "tasks.priority", "tasks.deadline").
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID).
		Find(&tasks).Error
	return tasks, err
}
