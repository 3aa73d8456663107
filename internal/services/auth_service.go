package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and identity lookup.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     constants.BcryptCost,
	}
}

// WithBcryptCost lowers the hashing cost. Tests only.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// RegisterInput carries the self-service signup fields. There is no role:
// new accounts are always members.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Team     string
	Phone    string
	Address  string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Emails are unique and compared exactly as stored, so only surrounding
// whitespace is dropped.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// passwordBytes keeps the prefix bcrypt actually hashes. Longer passwords
// are accepted and truncated rather than rejected.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > constants.MaxPasswordBytes {
		b = b[:constants.MaxPasswordBytes]
	}
	return b
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	name := strings.TrimSpace(input.Name)
	if len(name) < constants.MinNameLength {
		return nil, ErrNameTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
		Team:     strings.TrimSpace(input.Team),
		Phone:    strings.TrimSpace(input.Phone),
		Address:  strings.TrimSpace(input.Address),
	}

	if err := s.userRepo.Create(ctx, user, models.RoleMember); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies credentials. Unknown emails and wrong passwords fail with
// the same error after the same amount of bcrypt work.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), passwordBytes(input.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordBytes(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the user a verified token was issued for.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	signed, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: user, Token: signed}, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("tasknity-timing-guard"), s.cost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
