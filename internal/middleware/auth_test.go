package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/testutil"
	"github.com/tasknity/tasknity-api/internal/token"
	"gorm.io/gorm"
)

type guardEnv struct {
	db     *gorm.DB
	tokens *token.Service
	router *gin.Engine
}

func setupGuardEnv(t *testing.T, roles ...models.Role) guardEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	tokens := token.NewService("guard-secret", time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/session", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(constants.SessionKeyToken, c.Query("token"))
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	r.GET("/protected", RequireAuth(tokens, repository.NewUserRepository(db)), RequireRoles(roles...), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})

	return guardEnv{db: db, tokens: tokens, router: r}
}

func (e guardEnv) get(t *testing.T, authorization string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e guardEnv) issue(t *testing.T, u *models.User, role models.Role) string {
	t.Helper()
	raw, err := e.tokens.Issue(u.ID, u.Email, role)
	require.NoError(t, err)
	return raw
}

func TestRequireAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	env := setupGuardEnv(t)
	user := testutil.CreateUser(t, env.db, "a@example.com", models.RoleMember)
	otherSecret := token.NewService("another-secret", time.Hour)
	forged, err := otherSecret.Issue(user.ID, user.Email, models.RoleOwner)
	require.NoError(t, err)
	expired, err := token.NewService("guard-secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(user.ID, user.Email, models.RoleMember)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic " + env.issue(t, user, models.RoleMember),
		"garbage":      "Bearer not-a-token",
		"forged":       "Bearer " + forged,
		"expired":      "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			w := env.get(t, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body["code"])
		})
	}
}

func TestRequireAuth_AttachesPrincipalFromClaims(t *testing.T) {
	env := setupGuardEnv(t)
	user := testutil.CreateUser(t, env.db, "a@example.com", models.RoleMember)

	// promote in storage after issuing: the token still says MEMBER
	raw := env.issue(t, user, models.RoleMember)
	require.NoError(t, env.db.Model(user).Update("role", models.RoleAdmin).Error)

	w := env.get(t, "Bearer "+raw)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.ID, body["userId"])
	assert.Equal(t, string(models.RoleMember), body["role"])
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	env := setupGuardEnv(t)
	user := testutil.CreateUser(t, env.db, "gone@example.com", models.RoleAdmin)
	raw := env.issue(t, user, models.RoleAdmin)

	require.NoError(t, repository.NewUserRepository(env.db).Delete(context.Background(), user.ID))

	assert.Equal(t, http.StatusUnauthorized, env.get(t, "Bearer "+raw).Code)
}

func TestRequireAuth_SessionFallback(t *testing.T) {
	env := setupGuardEnv(t)
	user := testutil.CreateUser(t, env.db, "cookie@example.com", models.RoleViewer)
	raw := env.issue(t, user, models.RoleViewer)

	req := httptest.NewRequest(http.MethodPost, "/session?token="+raw, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	assert.Equal(t, http.StatusOK, env.get(t, "", cookies...).Code)
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name      string
		whitelist []models.Role
		role      models.Role
		want      int
	}{
		{"owner bypasses whitelist", []models.Role{models.RoleAdmin}, models.RoleOwner, http.StatusOK},
		{"listed role", []models.Role{models.RoleAdmin, models.RoleMember}, models.RoleMember, http.StatusOK},
		{"unlisted role", []models.Role{models.RoleAdmin}, models.RoleViewer, http.StatusForbidden},
		{"member on staff route", []models.Role{models.RoleOwner, models.RoleAdmin}, models.RoleMember, http.StatusForbidden},
		{"empty whitelist", nil, models.RoleViewer, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupGuardEnv(t, tt.whitelist...)
			user := testutil.CreateUser(t, env.db, "u@example.com", tt.role)
			w := env.get(t, "Bearer "+env.issue(t, user, tt.role))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRoles_WithoutAuthGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	called := false
	r.GET("/misordered", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/misordered", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "guard misconfigured")
	assert.False(t, called)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Recovery(log), RequestLogger(log))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
