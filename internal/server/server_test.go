package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tasknity/tasknity-api/internal/config"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/testutil"
	"github.com/tasknity/tasknity-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	tokens map[models.Role]string
	users  map[models.Role]*models.User
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = testutil.NewDB(s.T())
	router, err := NewRouter(Deps{
		Config:       &config.Config{CORSOrigins: []string{"http://localhost:3000"}},
		DB:           s.db,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:       token.NewService("api-secret", time.Hour),
		SessionStore: cookie.NewStore([]byte("secret")),
		BcryptCost:   bcrypt.MinCost,
	})
	s.Require().NoError(err)
	s.router = router

	s.tokens = map[models.Role]string{}
	s.users = map[models.Role]*models.User{}
	for _, role := range []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleMember, models.RoleViewer} {
		email := strings.ToLower(string(role)) + "@example.com"
		s.users[role] = testutil.CreateUser(s.T(), s.db, email, role)

		w := s.call("", http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "password123"})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			AccessToken string `json:"accessToken"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.tokens[role] = resp.AccessToken
	}
}

func (s *APITestSuite) call(raw, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if raw != "" {
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) as(role models.Role, method, path string, body any) *httptest.ResponseRecorder {
	return s.call(s.tokens[role], method, path, body)
}

func (s *APITestSuite) TestHealth() {
	w := s.call("", http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"ok"`)
}

func (s *APITestSuite) TestRegisterIsPublicAndForcesMember() {
	w := s.call("", http.MethodPost, "/api/auth/register", map[string]string{
		"email": "fresh@example.com", "password": "password123", "name": "Fresh", "role": "ADMIN",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"role":"MEMBER"`)
}

func (s *APITestSuite) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/api/auth/me", "/api/users/me", "/api/tasks", "/api/projects", "/api/kudos"} {
		s.Equal(http.StatusUnauthorized, s.call("", http.MethodGet, path, nil).Code, path)
	}
}

func (s *APITestSuite) TestRoleMatrix() {
	tests := []struct {
		method string
		path   string
		role   models.Role
		want   int
	}{
		{http.MethodGet, "/api/tasks/classified", models.RoleViewer, http.StatusForbidden},
		{http.MethodGet, "/api/tasks/classified", models.RoleMember, http.StatusForbidden},
		{http.MethodGet, "/api/tasks/classified", models.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/tasks/classified", models.RoleOwner, http.StatusOK},
		{http.MethodGet, "/api/users", models.RoleViewer, http.StatusForbidden},
		{http.MethodGet, "/api/users", models.RoleMember, http.StatusOK},
		{http.MethodGet, "/api/analytics/kpis", models.RoleMember, http.StatusForbidden},
		{http.MethodGet, "/api/analytics/kpis", models.RoleOwner, http.StatusOK},
		{http.MethodGet, "/api/analytics/insights", models.RoleViewer, http.StatusOK},
		{http.MethodGet, "/api/leaves", models.RoleMember, http.StatusForbidden},
		{http.MethodGet, "/api/leaves/my", models.RoleViewer, http.StatusOK},
		{http.MethodGet, "/api/attendance", models.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/attendance/today", models.RoleViewer, http.StatusOK},
		{http.MethodPost, "/api/attendance", models.RoleViewer, http.StatusForbidden},
		{http.MethodDelete, "/api/meetings/nope", models.RoleMember, http.StatusForbidden},
		{http.MethodDelete, "/api/meetings/nope", models.RoleAdmin, http.StatusNotFound},
		{http.MethodGet, "/api/kudos/leaderboard", models.RoleViewer, http.StatusOK},
		{http.MethodGet, "/api/auth/permissions", models.RoleViewer, http.StatusOK},
	}
	for _, tt := range tests {
		w := s.as(tt.role, tt.method, tt.path, nil)
		s.Equal(tt.want, w.Code, "%s %s as %s: %s", tt.method, tt.path, tt.role, w.Body.String())
	}
}

func (s *APITestSuite) TestDeletedUserTokenRejected() {
	w := s.as(models.RoleOwner, http.MethodDelete, "/api/users/"+s.users[models.RoleViewer].ID, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Equal(http.StatusUnauthorized, s.as(models.RoleViewer, http.MethodGet, "/api/auth/me", nil).Code)
}

func (s *APITestSuite) TestMemberCannotPromoteSelf() {
	w := s.as(models.RoleMember, http.MethodPatch, "/api/users/"+s.users[models.RoleMember].ID, map[string]string{"role": "OWNER"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.as(models.RoleAdmin, http.MethodPatch, "/api/users/"+s.users[models.RoleMember].ID, map[string]string{"role": "ADMIN"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(w.Body.String(), `"role":"ADMIN"`)
}

func (s *APITestSuite) TestProjectListingScopedByMembership() {
	mine := testutil.CreateProject(s.T(), s.db, "Mine", false, s.users[models.RoleMember].ID)
	public := testutil.CreateProject(s.T(), s.db, "Public", true)
	hidden := testutil.CreateProject(s.T(), s.db, "Hidden", false)

	ids := func(role models.Role) []string {
		w := s.as(role, http.MethodGet, "/api/projects", nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var items []struct {
			ID string `json:"id"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &items))
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.ID
		}
		return out
	}

	s.ElementsMatch([]string{mine.ID, public.ID}, ids(models.RoleMember))
	s.ElementsMatch([]string{public.ID}, ids(models.RoleViewer))
	s.ElementsMatch([]string{mine.ID, public.ID, hidden.ID}, ids(models.RoleAdmin))
}

func (s *APITestSuite) TestTaskVisibility() {
	project := testutil.CreateProject(s.T(), s.db, "Apollo", true)
	visible := testutil.CreateTask(s.T(), s.db, project.ID, "Visible", false, false)
	secret := testutil.CreateTask(s.T(), s.db, project.ID, "Secret", true, false)
	testutil.CreateTask(s.T(), s.db, project.ID, "Draft", false, true)

	w := s.as(models.RoleOwner, http.MethodGet, "/api/tasks", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var board []struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &board))
	s.Require().Len(board, 1)
	s.Equal(visible.ID, board[0].ID)

	s.Equal(http.StatusNotFound, s.as(models.RoleViewer, http.MethodGet, "/api/tasks/"+secret.ID, nil).Code)
	s.Equal(http.StatusOK, s.as(models.RoleAdmin, http.MethodGet, "/api/tasks/"+secret.ID, nil).Code)
	s.Equal(http.StatusForbidden, s.as(models.RoleViewer, http.MethodGet, "/api/tasks/project/"+project.ID, nil).Code)
}

func (s *APITestSuite) TestAttendanceMarkedOncePerDay() {
	body := map[string]string{"status": "PRESENT"}
	s.Require().Equal(http.StatusCreated, s.as(models.RoleMember, http.MethodPost, "/api/attendance", body).Code)

	w := s.as(models.RoleMember, http.MethodPost, "/api/attendance", body)
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "Attendance already marked for this date")

	w = s.as(models.RoleMember, http.MethodGet, "/api/attendance/my", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var mine []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &mine))
	s.Len(mine, 1)
}

func (s *APITestSuite) TestLeaveDecidedOnce() {
	w := s.as(models.RoleMember, http.MethodPost, "/api/leaves", map[string]string{"reason": "Dentist", "date": "2026-11-02"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var leave struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &leave))
	s.Equal("PENDING", leave.Status)

	path := "/api/leaves/" + leave.ID
	s.Equal(http.StatusForbidden, s.as(models.RoleMember, http.MethodPatch, path, map[string]string{"status": "APPROVED"}).Code)
	s.Equal(http.StatusBadRequest, s.as(models.RoleAdmin, http.MethodPatch, path, map[string]string{"status": "PENDING"}).Code)
	s.Equal(http.StatusOK, s.as(models.RoleAdmin, http.MethodPatch, path, map[string]string{"status": "APPROVED"}).Code)

	w = s.as(models.RoleOwner, http.MethodPatch, path, map[string]string{"status": "REJECTED"})
	s.Equal(http.StatusConflict, w.Code)
	s.Contains(w.Body.String(), "Request already decided")
}

func (s *APITestSuite) TestExpenseApprovalRequiresStaff() {
	w := s.as(models.RoleMember, http.MethodPost, "/api/expenses", map[string]any{
		"title": "Conference ticket", "category": "Training", "amount": 250.5, "date": "2026-11-03",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var expense struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &expense))

	path := "/api/expenses/" + expense.ID
	s.Equal(http.StatusForbidden, s.as(models.RoleMember, http.MethodPatch, path, map[string]string{"status": "APPROVED"}).Code)

	w = s.as(models.RoleAdmin, http.MethodPatch, path, map[string]string{"status": "APPROVED"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.as(models.RoleMember, http.MethodGet, "/api/expenses/my", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var mine []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &mine))
	s.Require().Len(mine, 1)
	s.Equal(expense.ID, mine[0].ID)
	s.Equal("APPROVED", mine[0].Status)
}

func (s *APITestSuite) TestResponsesNeverCarryPasswords() {
	member := s.users[models.RoleMember]
	project := testutil.CreateProject(s.T(), s.db, "Apollo", true, member.ID)

	w := s.as(models.RoleMember, http.MethodPost, "/api/tasks", map[string]any{
		"title": "Assigned", "projectId": project.ID, "assigneeIds": []string{member.ID},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "password")

	w = s.as(models.RoleMember, http.MethodPost, "/api/leaves", map[string]string{"reason": "Dentist", "date": "2026-11-02"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	for _, path := range []string{
		"/api/projects",
		"/api/projects/" + project.ID,
		"/api/tasks",
		"/api/tasks/project/" + project.ID,
		"/api/leaves",
		"/api/users",
		"/api/users/" + member.ID,
		"/api/users/me",
		"/api/auth/me",
	} {
		w := s.as(models.RoleAdmin, http.MethodGet, path, nil)
		s.Require().Equal(http.StatusOK, w.Code, path)
		s.NotContains(w.Body.String(), "password", path)
		s.NotContains(w.Body.String(), member.Password, path)
	}
	s.Contains(s.as(models.RoleAdmin, http.MethodGet, "/api/tasks", nil).Body.String(), member.ID)
	s.Contains(s.as(models.RoleAdmin, http.MethodGet, "/api/leaves", nil).Body.String(), member.Email)
}

func (s *APITestSuite) TestPrivateProjectVisibleOnceViewerAdded() {
	project := testutil.CreateProject(s.T(), s.db, "Private", false, s.users[models.RoleMember].ID)
	viewer := s.users[models.RoleViewer].ID

	listed := func() bool {
		w := s.as(models.RoleViewer, http.MethodGet, "/api/projects", nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var items []struct {
			ID string `json:"id"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &items))
		for _, it := range items {
			if it.ID == project.ID {
				return true
			}
		}
		return false
	}

	s.False(listed())

	w := s.as(models.RoleAdmin, http.MethodPatch, "/api/projects/"+project.ID, map[string]any{
		"memberIds": []string{s.users[models.RoleMember].ID, viewer},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.True(listed())
}

func (s *APITestSuite) TestKudosToSelfRejected() {
	me := s.users[models.RoleViewer].ID
	w := s.as(models.RoleViewer, http.MethodPost, "/api/kudos", map[string]string{"toUserId": me, "message": "Nice"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.as(models.RoleViewer, http.MethodPost, "/api/kudos", map[string]string{"toUserId": s.users[models.RoleMember].ID, "message": "Nice"})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *APITestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestNewSessionStore_CookieWithoutRedis(t *testing.T) {
	store, err := NewSessionStore(&config.Config{SessionSecret: "secret"})
	require.NoError(t, err)
	_, isCookie := store.(cookie.Store)
	assert.True(t, isCookie)
}
