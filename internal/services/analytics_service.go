package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
)

type KPIs struct {
	Overview struct {
		TotalUsers     int64 `json:"totalUsers"`
		TotalProjects  int64 `json:"totalProjects"`
		TotalTasks     int64 `json:"totalTasks"`
		CompletionRate int   `json:"completionRate"`
	} `json:"overview"`
	Tasks struct {
		Completed  int64 `json:"completed"`
		InProgress int64 `json:"inProgress"`
		Todo       int64 `json:"todo"`
	} `json:"tasks"`
	Expenses struct {
		Pending       int64   `json:"pending"`
		TotalApproved float64 `json:"totalApproved"`
	} `json:"expenses"`
	Leaves struct {
		Pending int64 `json:"pending"`
	} `json:"leaves"`
	Attendance struct {
		Today int64 `json:"today"`
	} `json:"attendance"`
	Engagement struct {
		KudosThisMonth   int64 `json:"kudosThisMonth"`
		MeetingsThisWeek int64 `json:"meetingsThisWeek"`
	} `json:"engagement"`
}

type Productivity struct {
	TaskVelocity    int64                           `json:"taskVelocity"`
	TopPerformers   []repository.AssigneeCount      `json:"topPerformers"`
	ProjectProgress []repository.ProjectProgressRow `json:"projectProgress"`
}

type InsightStats struct {
	TotalTasks          int `json:"totalTasks"`
	CompletedTasks      int `json:"completedTasks"`
	OverdueTasks        int `json:"overdueTasks"`
	HighPriorityPending int `json:"highPriorityPending"`
}

type Insights struct {
	Stats     InsightStats `json:"stats"`
	Insights  []string     `json:"insights"`
	Narrative string       `json:"narrative,omitempty"`
}

// AnalyticsService computes dashboard figures.
type AnalyticsService struct {
	statsRepo repository.StatsRepository
	narrator  Narrator
	log       *slog.Logger
	now       func() time.Time
}

// NewAnalyticsService creates the service. narrator may be nil, in which case
// insights are rule-based only.
func NewAnalyticsService(statsRepo repository.StatsRepository, narrator Narrator, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		statsRepo: statsRepo,
		narrator:  narrator,
		log:       log,
		now:       time.Now,
	}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func (s *AnalyticsService) KPIs(ctx context.Context) (*KPIs, error) {
	now := s.now()
	counts, err := s.statsRepo.Dashboard(ctx, repository.DashboardWindow{
		Today:      utils.StartOfDayUTC(now),
		MonthStart: utils.StartOfMonthUTC(now),
		WeekStart:  utils.StartOfWeekUTC(now),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard counts: %w", err)
	}

	var out KPIs
	out.Overview.TotalUsers = counts.Users
	out.Overview.TotalProjects = counts.Projects
	out.Overview.TotalTasks = counts.VisibleTasks
	out.Overview.CompletionRate = percent(counts.TasksDone, counts.VisibleTasks)
	out.Tasks.Completed = counts.TasksDone
	out.Tasks.InProgress = counts.TasksInProgress
	out.Tasks.Todo = counts.TasksTodo
	out.Expenses.Pending = counts.PendingExpenses
	out.Expenses.TotalApproved = counts.ApprovedExpenses
	out.Leaves.Pending = counts.PendingLeaves
	out.Attendance.Today = counts.AttendanceToday
	out.Engagement.KudosThisMonth = counts.KudosThisMonth
	out.Engagement.MeetingsThisWeek = counts.MeetingsThisWeek
	return &out, nil
}

func (s *AnalyticsService) Productivity(ctx context.Context) (*Productivity, error) {
	since := s.now().Add(-constants.ProductivityWindow)
	velocity, err := s.statsRepo.CompletedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	performers, err := s.statsRepo.TopAssignees(ctx, constants.TopPerformersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank assignees: %w", err)
	}
	projects, err := s.statsRepo.ProjectProgress(ctx, constants.TopProjectsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load project progress: %w", err)
	}

	if performers == nil {
		performers = []repository.AssigneeCount{}
	}
	if projects == nil {
		projects = []repository.ProjectProgressRow{}
	}
	return &Productivity{
		TaskVelocity:    velocity,
		TopPerformers:   performers,
		ProjectProgress: projects,
	}, nil
}

// Insights summarizes the tasks assigned to userID.
func (s *AnalyticsService) Insights(ctx context.Context, userID string) (*Insights, error) {
	tasks, err := s.statsRepo.AssignedTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned tasks: %w", err)
	}

	stats := taskStats(tasks, s.now())
	out := &Insights{Stats: stats, Insights: insightMessages(stats)}

	if s.narrator != nil {
		narrative, err := s.narrator.Narrate(ctx, stats, out.Insights)
		if err != nil {
			s.log.WarnContext(ctx, "insight narration failed", "error", err)
		} else {
			out.Narrative = narrative
		}
	}
	return out, nil
}

func taskStats(tasks []models.Task, now time.Time) InsightStats {
	stats := InsightStats{TotalTasks: len(tasks)}
	for _, t := range tasks {
		done := t.Status == models.TaskStatusDone
		if done {
			stats.CompletedTasks++
		}
		if !done && t.Deadline != nil && t.Deadline.Before(now) {
			stats.OverdueTasks++
		}
		if !done && t.Priority == models.PriorityHigh {
			stats.HighPriorityPending++
		}
	}
	return stats
}

func insightMessages(stats InsightStats) []string {
	var msgs []string

	if stats.TotalTasks > 0 {
		rate := percent(int64(stats.CompletedTasks), int64(stats.TotalTasks))
		switch {
		case rate >= 80:
			msgs = append(msgs, "🌟 Excellent! You're maintaining an 80%+ completion rate.")
		case rate >= 50:
			msgs = append(msgs, fmt.Sprintf("📊 You've completed %d%% of your tasks. Keep pushing!", rate))
		default:
			msgs = append(msgs, fmt.Sprintf("⚡ Focus mode: Only %d%% completion. Consider prioritizing.", rate))
		}
	}
	if stats.OverdueTasks > 0 {
		msgs = append(msgs, fmt.Sprintf("⏰ %d task(s) are overdue. Review deadlines.", stats.OverdueTasks))
	}
	if stats.HighPriorityPending > 0 {
		msgs = append(msgs, fmt.Sprintf("🔥 %d high-priority task(s) need attention.", stats.HighPriorityPending))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, "✨ All caught up! You're doing great.")
	}
	return msgs
}
