package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/testutil"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
	)
}

func principalOf(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func taskTitles(tasks []models.Task) []string {
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles = append(titles, t.Title)
	}
	return titles
}

func TestTaskService_BoardHidesClassifiedAndDrafts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	project := testutil.CreateProject(t, db, "Apollo", true)
	testutil.CreateTask(t, db, project.ID, "open", false, false)
	testutil.CreateTask(t, db, project.ID, "secret", true, false)
	testutil.CreateTask(t, db, project.ID, "draft", false, true)

	tasks, err := svc.ListBoard(context.Background(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open"}, taskTitles(tasks))

	classified, err := svc.ListClassified(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"secret"}, taskTitles(classified))
}

func TestTaskService_ListByProjectDependsOnRole(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	member := testutil.CreateUser(t, db, "member@example.com", models.RoleMember)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	project := testutil.CreateProject(t, db, "Apollo", true)
	testutil.CreateTask(t, db, project.ID, "open", false, false)
	testutil.CreateTask(t, db, project.ID, "secret", true, false)
	testutil.CreateTask(t, db, project.ID, "draft", false, true)

	memberView, err := svc.ListByProject(context.Background(), principalOf(member), project.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open", "draft"}, taskTitles(memberView))

	adminView, err := svc.ListByProject(context.Background(), principalOf(admin), project.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open", "secret", "draft"}, taskTitles(adminView))
}

func TestTaskService_GetClassified(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	member := testutil.CreateUser(t, db, "member@example.com", models.RoleMember)
	owner := testutil.CreateUser(t, db, "owner@example.com", models.RoleOwner)
	project := testutil.CreateProject(t, db, "Apollo", true)
	secret := testutil.CreateTask(t, db, project.ID, "secret", true, false)

	_, err := svc.Get(context.Background(), principalOf(member), secret.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	got, err := svc.Get(context.Background(), principalOf(owner), secret.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestTaskService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	ctx := context.Background()
	assignee := testutil.CreateUser(t, db, "dev@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "Apollo", true)

	task, err := svc.Create(ctx, CreateTaskInput{
		Title:       "  Write docs ",
		ProjectID:   project.ID,
		AssigneeIDs: []string{assignee.ID, assignee.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	require.Len(t, task.Assignments, 1)
	assert.Equal(t, assignee.ID, task.Assignments[0].UserID)

	_, err = svc.Create(ctx, CreateTaskInput{Title: "Orphan", ProjectID: "missing"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Create(ctx, CreateTaskInput{Title: "Bad", ProjectID: project.ID, Status: "BLOCKED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Create(ctx, CreateTaskInput{Title: "Ghost", ProjectID: project.ID, AssigneeIDs: []string{"nobody"}})
	assert.ErrorIs(t, err, ErrUnknownUsers)
}

func TestTaskService_UpdateReplacesAssignees(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTaskService(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	b := testutil.CreateUser(t, db, "b@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "Apollo", true)

	task, err := svc.Create(ctx, CreateTaskInput{Title: "Ship", ProjectID: project.ID, AssigneeIDs: []string{a.ID}})
	require.NoError(t, err)

	status := "done"
	ids := []string{b.ID}
	updated, err := svc.Update(ctx, task.ID, UpdateTaskInput{Status: &status, AssigneeIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)
	require.Len(t, updated.Assignments, 1)
	assert.Equal(t, b.ID, updated.Assignments[0].UserID)

	require.NoError(t, svc.Delete(ctx, task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, task.ID), ErrTaskNotFound)
}

func TestProjectService_ListIsRoleScoped(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db), repository.NewUserRepository(db))
	ctx := context.Background()
	viewer := testutil.CreateUser(t, db, "viewer@example.com", models.RoleViewer)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	testutil.CreateProject(t, db, "public", true)
	testutil.CreateProject(t, db, "private-member", false, viewer.ID)
	testutil.CreateProject(t, db, "private-other", false)

	titles := func(items []repository.ProjectListItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Project.Title)
		}
		return out
	}

	viewerItems, err := svc.List(ctx, principalOf(viewer))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public", "private-member"}, titles(viewerItems))

	adminItems, err := svc.List(ctx, principalOf(admin))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public", "private-member", "private-other"}, titles(adminItems))
}

func TestProjectService_CreateAndUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db), repository.NewUserRepository(db))
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateProjectInput{Title: "Nova"})
	require.NoError(t, err)
	assert.True(t, project.IsPublic)

	progress := 101
	_, err = svc.Update(ctx, project.ID, UpdateProjectInput{Progress: &progress})
	assert.ErrorIs(t, err, ErrProgressOutOfRange)

	progress = 40
	private := false
	updated, err := svc.Update(ctx, project.ID, UpdateProjectInput{Progress: &progress, IsPublic: &private})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.False(t, updated.IsPublic)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
