package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/rbac"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/utils"
	"gorm.io/gorm"
)

// parseDecision accepts only the two terminal states.
func parseDecision(s string) (models.RequestStatus, error) {
	status := models.RequestStatus(strings.ToUpper(s))
	if status != models.RequestApproved && status != models.RequestRejected {
		return "", ErrInvalidDecision
	}
	return status, nil
}

// mapDecideError turns repository outcomes of a decision into service errors.
func mapDecideError(err error, notFound error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, repository.ErrRequestNotPending):
		return ErrRequestDecided
	default:
		return fmt.Errorf("failed to update request: %w", err)
	}
}

// LeaveService handles leave requests.
type LeaveService struct {
	leaveRepo repository.LeaveRepository
}

func NewLeaveService(leaveRepo repository.LeaveRepository) *LeaveService {
	return &LeaveService{leaveRepo: leaveRepo}
}

type CreateLeaveInput struct {
	UserID string
	Reason string
	Date   string
}

// Create files a request for the caller. It always starts pending.
func (s *LeaveService) Create(ctx context.Context, input CreateLeaveInput) (*models.Leave, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	leave := &models.Leave{
		UserID: input.UserID,
		Reason: strings.TrimSpace(input.Reason),
		Date:   date,
		Status: models.RequestPending,
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to create leave: %w", err)
	}
	return s.leaveRepo.FindByID(ctx, leave.ID)
}

func (s *LeaveService) List(ctx context.Context) ([]models.Leave, error) {
	leaves, err := s.leaveRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

func (s *LeaveService) ListMine(ctx context.Context, userID string) ([]models.Leave, error) {
	leaves, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

// Decide approves or rejects a pending request. Only callers who manage the
// team may decide, so a submitter can never approve their own request.
func (s *LeaveService) Decide(ctx context.Context, caller auth.Principal, id, status string) (*models.Leave, error) {
	if !rbac.Can(caller.Role, rbac.ManageTeam) {
		return nil, ErrForbidden
	}
	decision, err := parseDecision(status)
	if err != nil {
		return nil, err
	}

	leave, err := s.leaveRepo.Decide(ctx, id, decision)
	if err != nil {
		return nil, mapDecideError(err, ErrLeaveNotFound)
	}
	return leave, nil
}

// ExpenseService handles expense claims.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

type CreateExpenseInput struct {
	UserID   string
	Title    string
	Category string
	Amount   float64
	Date     string
}

// Create files a claim for the caller. It always starts pending.
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	expense := &models.Expense{
		UserID:   input.UserID,
		Title:    title,
		Category: strings.TrimSpace(input.Category),
		Amount:   input.Amount,
		Date:     date,
		Status:   models.RequestPending,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return s.expenseRepo.FindByID(ctx, expense.ID)
}

func (s *ExpenseService) List(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) ListMine(ctx context.Context, userID string) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Decide approves or rejects a pending claim. Only expense managers may decide.
func (s *ExpenseService) Decide(ctx context.Context, caller auth.Principal, id, status string) (*models.Expense, error) {
	if !rbac.Can(caller.Role, rbac.ManageExpenses) {
		return nil, ErrForbidden
	}
	decision, err := parseDecision(status)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.Decide(ctx, id, decision)
	if err != nil {
		return nil, mapDecideError(err, ErrExpenseNotFound)
	}
	return expense, nil
}
