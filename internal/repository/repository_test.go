package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknity/tasknity-api/internal/database"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), logger.Silent)
	require.NoError(t, err)
	return db, mock
}

func TestAttendanceCreate_TranslatesMySQLDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `attendance`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Attendance{
		UserID: "u-1",
		Date:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		Status: models.AttendancePresent,
	})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_TranslatesMySQLDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Email: "a@example.com", Name: "A"}, models.RoleMember)

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCreate_UniquePerUserAndDay(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	first := &models.Attendance{UserID: user.ID, Date: day, Status: models.AttendancePresent}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, user.Name, first.User.Name)

	err := repo.Create(ctx, &models.Attendance{UserID: user.ID, Date: day, Status: models.AttendanceLate})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.Create(ctx, &models.Attendance{UserID: user.ID, Date: day.AddDate(0, 0, 1), Status: models.AttendanceLate}))

	today, err := repo.ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, models.AttendancePresent, today[0].Status)
}

func TestProjectList_VisibilityFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	viewer := testutil.CreateUser(t, db, "viewer@example.com", models.RoleViewer)
	other := testutil.CreateUser(t, db, "other@example.com", models.RoleMember)

	public := testutil.CreateProject(t, db, "Public", true)
	private := testutil.CreateProject(t, db, "Private", false, other.ID)
	testutil.CreateTask(t, db, private.ID, "t1", false, false)
	testutil.CreateTask(t, db, private.ID, "t2", false, true)

	visible, err := repo.List(ctx, ProjectFilter{VisibleTo: &viewer.ID})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID, visible[0].Project.ID)

	all, err := repo.List(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, item := range all {
		if item.Project.ID == private.ID {
			assert.Equal(t, int64(2), item.TaskCount)
			require.Len(t, item.Project.Members, 1)
			assert.Equal(t, other.Email, item.Project.Members[0].User.Email)
			assert.Empty(t, item.Project.Members[0].User.Password)
		}
	}

	members := []string{other.ID, viewer.ID}
	require.NoError(t, repo.Update(ctx, private, &members))

	visible, err = repo.List(ctx, ProjectFilter{VisibleTo: &viewer.ID})
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestProjectDelete_RemovesTasks(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "P", true, user.ID)
	task := testutil.CreateTask(t, db, project.ID, "t", false, false)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID}).Error)

	require.NoError(t, repo.Delete(ctx, project.ID))

	var remaining int64
	db.Model(&models.Task{}).Count(&remaining)
	assert.Zero(t, remaining)
	db.Model(&models.TaskAssignment{}).Count(&remaining)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, project.ID), gorm.ErrRecordNotFound)
}

func TestTaskList_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	project := testutil.CreateProject(t, db, "P", true)
	other := testutil.CreateProject(t, db, "Q", true)
	testutil.CreateTask(t, db, project.ID, "visible", false, false)
	testutil.CreateTask(t, db, project.ID, "secret", true, false)
	testutil.CreateTask(t, db, project.ID, "draft", false, true)
	testutil.CreateTask(t, db, other.ID, "elsewhere", false, false)

	notClassified := false
	board, err := repo.List(ctx, TaskFilter{Classified: &notClassified})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"visible", "elsewhere"}, titles(board))

	classified := true
	secret, err := repo.List(ctx, TaskFilter{Classified: &classified, IncludeDrafts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"secret"}, titles(secret))

	byProject, err := repo.List(ctx, TaskFilter{ProjectID: &project.ID, IncludeDrafts: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"visible", "secret", "draft"}, titles(byProject))
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestDecide_OnlyFromPending(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewExpenseRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)

	expense := &models.Expense{UserID: user.ID, Title: "Taxi", Category: "travel", Amount: 12, Date: time.Now(), Status: models.RequestPending}
	require.NoError(t, repo.Create(ctx, expense))

	decided, err := repo.Decide(ctx, expense.ID, models.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, decided.Status)
	assert.Equal(t, user.ID, decided.User.ID)

	_, err = repo.Decide(ctx, expense.ID, models.RequestRejected)
	assert.ErrorIs(t, err, ErrRequestNotPending)

	_, err = repo.Decide(ctx, "missing", models.RequestApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserDelete_Cascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "gone@example.com", models.RoleMember)
	peer := testutil.CreateUser(t, db, "peer@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "P", false, user.ID, peer.ID)
	task := testutil.CreateTask(t, db, project.ID, "t", false, false)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Kudos{FromUserID: peer.ID, ToUserID: user.ID, Message: "thanks", Emoji: "🎉"}).Error)
	require.NoError(t, db.Create(&models.Leave{UserID: user.ID, Reason: "r", Date: time.Now(), Status: models.RequestPending}).Error)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.ProjectMember{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ProjectMember{}).Where("user_id = ?", peer.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.Kudos{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Leave{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Task{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), gorm.ErrRecordNotFound)
}

func TestUserFindDetail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "P", false, user.ID)
	task := testutil.CreateTask(t, db, project.ID, "t", false, false)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID}).Error)

	detail, err := repo.FindDetail(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.User.Password)
	require.Len(t, detail.Projects, 1)
	assert.Equal(t, "P", detail.Projects[0].Title)
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, task.ID, detail.Tasks[0].ID)
}

func TestKudosLeaderboard(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewKudosRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	b := testutil.CreateUser(t, db, "b@example.com", models.RoleMember)
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &models.Kudos{FromUserID: a.ID, ToUserID: b.ID, Message: "nice", Emoji: "🎉"}))
	}
	require.NoError(t, repo.Create(ctx, &models.Kudos{FromUserID: b.ID, ToUserID: a.ID, Message: "ty", Emoji: "🎉"}))

	board, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, b.ID, board[0].ID)
	assert.Equal(t, int64(2), board[0].KudosCount)

	feed, err := repo.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, feed, 3)
}

func TestMeetingList_Participant(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMeetingRepository(db)
	ctx := context.Background()

	organizer := testutil.CreateUser(t, db, "o@example.com", models.RoleAdmin)
	attendee := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	outsider := testutil.CreateUser(t, db, "x@example.com", models.RoleMember)

	start := time.Now().Add(time.Hour)
	meeting := &models.Meeting{Title: "Sync", StartTime: start, EndTime: start.Add(time.Hour), OrganizerID: organizer.ID}
	require.NoError(t, repo.Create(ctx, meeting, []string{attendee.ID, attendee.ID}))

	for _, tc := range []struct {
		user string
		want int
	}{{organizer.ID, 1}, {attendee.ID, 1}, {outsider.ID, 0}} {
		got, err := repo.List(ctx, MeetingFilter{Participant: &tc.user})
		require.NoError(t, err)
		assert.Len(t, got, tc.want)
	}

	found, err := repo.FindByID(ctx, meeting.ID)
	require.NoError(t, err)
	require.Len(t, found.Attendees, 1)
	assert.Equal(t, attendee.Email, found.Attendees[0].User.Email)
	assert.Equal(t, organizer.Email, found.Organizer.Email)
}

func TestInvoiceUpdate_ReplacesItems(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewInvoiceRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)

	invoice := &models.Invoice{
		InvoiceNumber: "INV-0000-0001",
		ClientName:    "Acme",
		ClientEmail:   "billing@acme.test",
		IssueDate:     time.Now(),
		DueDate:       time.Now().AddDate(0, 0, 30),
		Status:        models.InvoiceDraft,
		CreatorID:     user.ID,
		Items: []models.InvoiceItem{
			{Description: "a", Quantity: 1, UnitPrice: 10, Amount: 10},
			{Description: "b", Quantity: 2, UnitPrice: 5, Amount: 10},
		},
	}
	require.NoError(t, repo.Create(ctx, invoice))

	items := []models.InvoiceItem{{Description: "c", Quantity: 1, UnitPrice: 99, Amount: 99}}
	invoice.Status = models.InvoiceSent
	require.NoError(t, repo.Update(ctx, invoice, &items))

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceSent, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "c", found.Items[0].Description)
	assert.Equal(t, user.Email, found.Creator.Email)
}

func TestStatsDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "a@example.com", models.RoleMember)
	project := testutil.CreateProject(t, db, "P", true, user.ID)
	done := testutil.CreateTask(t, db, project.ID, "done", false, false)
	db.Model(done).Update("status", models.TaskStatusDone)
	testutil.CreateTask(t, db, project.ID, "todo", false, false)
	testutil.CreateTask(t, db, project.ID, "secret", true, false)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: done.ID, UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Expense{UserID: user.ID, Title: "x", Category: "c", Amount: 40, Date: time.Now(), Status: models.RequestApproved}).Error)
	require.NoError(t, db.Create(&models.Expense{UserID: user.ID, Title: "y", Category: "c", Amount: 5, Date: time.Now(), Status: models.RequestPending}).Error)

	now := time.Now().UTC()
	counts, err := repo.Dashboard(ctx, DashboardWindow{Today: now.Truncate(24 * time.Hour), MonthStart: now.AddDate(0, -1, 0), WeekStart: now.AddDate(0, 0, -7)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Users)
	assert.Equal(t, int64(2), counts.VisibleTasks)
	assert.Equal(t, int64(1), counts.TasksDone)
	assert.Equal(t, int64(1), counts.TasksTodo)
	assert.Equal(t, int64(1), counts.PendingExpenses)
	assert.InDelta(t, 40.0, counts.ApprovedExpenses, 0.001)

	top, err := repo.TopAssignees(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].TasksAssigned)

	progress, err := repo.ProjectProgress(ctx, 10)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, int64(3), progress[0].TaskCount)
	assert.Equal(t, int64(1), progress[0].MemberCount)

	assigned, err := repo.AssignedTasks(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, models.TaskStatusDone, assigned[0].Status)
}
