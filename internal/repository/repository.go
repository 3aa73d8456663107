package repository

import (
	"context"
	"time"

	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/utils"
)

// Column sets selected by the repositories. Nested users only ever carry the
// summary columns, never the password hash.
var (
	userSummaryColumns = []string{"id", "name", "email", "role", "team"}
	userProfileColumns = []string{"id", "email", "name", "role", "team", "phone", "address", "joined_at", "created_at", "updated_at"}
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts user with the given role. The role is never taken from
	// request input.
	Create(ctx context.Context, user *models.User, role models.Role) error

	// FindByID finds a user by ID, password hash included
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email, password hash included
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns every user profile, newest first
	List(ctx context.Context) ([]models.User, error)

	// FindDetail loads a profile with its project memberships and assigned tasks
	FindDetail(ctx context.Context, id string) (*UserDetail, error)

	// Update saves the scalar columns of user
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user and every row owned by or linked to them
	Delete(ctx context.Context, id string) error

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ctx context.Context, ids []string) (int64, error)
}

// UserDetail is the result of UserRepository.FindDetail.
type UserDetail struct {
	User     models.User
	Projects []models.Project
	Tasks    []models.Task
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// List returns projects newest first with member summaries. A non-nil
	// filter.VisibleTo restricts the result to public projects and projects
	// that user is a member of.
	List(ctx context.Context, filter ProjectFilter) ([]ProjectListItem, error)

	// FindByID loads a project with members and task summaries
	FindByID(ctx context.Context, id string) (*models.Project, error)

	Exists(ctx context.Context, id string) (bool, error)

	// Create inserts the project and its memberships atomically
	Create(ctx context.Context, project *models.Project, memberIDs []string) error

	// Update saves scalar columns and, when memberIDs is non-nil, replaces the member set
	Update(ctx context.Context, project *models.Project, memberIDs *[]string) error

	// Delete removes the project with its tasks and memberships
	Delete(ctx context.Context, id string) error
}

type ProjectFilter struct {
	VisibleTo *string
}

type ProjectListItem struct {
	Project   models.Project
	TaskCount int64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List retrieves tasks with filtering
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// FindByID loads a task with its project and assignees
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// Create inserts the task and its assignments atomically
	Create(ctx context.Context, task *models.Task, assigneeIDs []string) error

	// Update saves scalar columns and, when assigneeIDs is non-nil, replaces the assignees
	Update(ctx context.Context, task *models.Task, assigneeIDs *[]string) error

	// Delete removes the task and its assignments
	Delete(ctx context.Context, id string) error
}

// TaskFilter holds filtering options for listing tasks. Nil fields do not filter.
type TaskFilter struct {
	ProjectID     *string
	Classified    *bool
	IncludeDrafts bool
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Create inserts a mark. A second mark for the same user and day fails
	// with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, record *models.Attendance) error

	// List returns every mark with its user, newest day first
	List(ctx context.Context) ([]models.Attendance, error)

	// ListByUser returns the marks of one user, newest day first
	ListByUser(ctx context.Context, userID string) ([]models.Attendance, error)

	// ListByDate returns every mark of one day with its user
	ListByDate(ctx context.Context, day time.Time) ([]models.Attendance, error)
}

// LeaveRepository defines the interface for leave request data access
type LeaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	FindByID(ctx context.Context, id string) (*models.Leave, error)
	List(ctx context.Context) ([]models.Leave, error)
	ListByUser(ctx context.Context, userID string) ([]models.Leave, error)

	// Decide moves a pending request to status. It fails with
	// ErrRequestNotPending when the request exists but is no longer pending.
	Decide(ctx context.Context, id string, status models.RequestStatus) (*models.Leave, error)
}

// ExpenseRepository defines the interface for expense claim data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id string) (*models.Expense, error)
	List(ctx context.Context) ([]models.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]models.Expense, error)

	// Decide moves a pending claim to status. It fails with
	// ErrRequestNotPending when the claim exists but is no longer pending.
	Decide(ctx context.Context, id string, status models.RequestStatus) (*models.Expense, error)
}

// KudosRepository defines the interface for kudos data access
type KudosRepository interface {
	Create(ctx context.Context, kudos *models.Kudos) error
	FindByID(ctx context.Context, id string) (*models.Kudos, error)
	ListRecent(ctx context.Context, page utils.PaginationParams) ([]models.Kudos, error)
	ListByUser(ctx context.Context, userID string) ([]models.Kudos, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type LeaderboardEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Team       string `json:"team,omitempty"`
	KudosCount int64  `json:"kudosCount"`
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	List(ctx context.Context, filter MeetingFilter) ([]models.Meeting, error)
	FindByID(ctx context.Context, id string) (*models.Meeting, error)
	Create(ctx context.Context, meeting *models.Meeting, attendeeIDs []string) error
	Update(ctx context.Context, meeting *models.Meeting, attendeeIDs *[]string) error
	Delete(ctx context.Context, id string) error
}

// MeetingFilter holds filtering options for listing meetings, ordered by start time.
type MeetingFilter struct {
	StartsAfter *time.Time
	// Participant matches meetings the user organizes or attends.
	Participant *string
	Limit       int
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	List(ctx context.Context) ([]models.Invoice, error)
	FindByID(ctx context.Context, id string) (*models.Invoice, error)

	// Update saves scalar columns and, when items is non-nil, replaces every line item
	Update(ctx context.Context, invoice *models.Invoice, items *[]models.InvoiceItem) error
	Delete(ctx context.Context, id string) error
}

// StatsRepository runs the aggregate queries behind the analytics dashboard.
type StatsRepository interface {
	Dashboard(ctx context.Context, window DashboardWindow) (*DashboardCounts, error)
	TopAssignees(ctx context.Context, limit int) ([]AssigneeCount, error)
	ProjectProgress(ctx context.Context, limit int) ([]ProjectProgressRow, error)
	CompletedSince(ctx context.Context, since time.Time) (int64, error)
	AssignedTasks(ctx context.Context, userID string) ([]models.Task, error)
}

type DashboardWindow struct {
	Today      time.Time
	MonthStart time.Time
	WeekStart  time.Time
}

type DashboardCounts struct {
	Users            int64
	Projects         int64
	VisibleTasks     int64
	TasksDone        int64
	TasksInProgress  int64
	TasksTodo        int64
	PendingExpenses  int64
	ApprovedExpenses float64
	PendingLeaves    int64
	AttendanceToday  int64
	KudosThisMonth   int64
	MeetingsThisWeek int64
}

type AssigneeCount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Team          string `json:"team,omitempty"`
	TasksAssigned int64  `json:"tasksAssigned"`
}

type ProjectProgressRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Progress    int    `json:"progress"`
	TaskCount   int64  `json:"taskCount"`
	MemberCount int64  `json:"memberCount"`
}
