// Package server assembles the HTTP engine.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/config"
	"github.com/tasknity/tasknity-api/internal/constants"
	"github.com/tasknity/tasknity-api/internal/handlers"
	"github.com/tasknity/tasknity-api/internal/middleware"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/routes"
	"github.com/tasknity/tasknity-api/internal/services"
	"github.com/tasknity/tasknity-api/internal/token"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators of the router.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger
	Tokens *token.Service
	// Narrator is optional; nil keeps insights rule-based.
	Narrator services.Narrator
	// SessionStore overrides the store derived from Config.
	SessionStore sessions.Store
	// BcryptCost overrides the password hashing cost when non-zero.
	BcryptCost int
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	handlers.RegisterValidators()

	store := deps.SessionStore
	if store == nil {
		var err error
		if store, err = NewSessionStore(cfg); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
		sessions.Sessions(constants.SessionCookieName, store),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TaskNity API is running",
		})
	})

	userRepo := repository.NewUserRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	authService := services.NewAuthService(userRepo, deps.Tokens)
	if deps.BcryptCost != 0 {
		authService.WithBcryptCost(deps.BcryptCost)
	}

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Users:      handlers.NewUserHandler(services.NewUserService(userRepo)),
		Projects:   handlers.NewProjectHandler(services.NewProjectService(projectRepo, userRepo)),
		Tasks:      handlers.NewTaskHandler(services.NewTaskService(taskRepo, projectRepo, userRepo)),
		Attendance: handlers.NewAttendanceHandler(services.NewAttendanceService(repository.NewAttendanceRepository(deps.DB))),
		Leaves:     handlers.NewLeaveHandler(services.NewLeaveService(repository.NewLeaveRepository(deps.DB))),
		Expenses:   handlers.NewExpenseHandler(services.NewExpenseService(repository.NewExpenseRepository(deps.DB))),
		Analytics:  handlers.NewAnalyticsHandler(services.NewAnalyticsService(repository.NewStatsRepository(deps.DB), deps.Narrator, deps.Logger)),
		Kudos:      handlers.NewKudosHandler(services.NewKudosService(repository.NewKudosRepository(deps.DB), userRepo)),
		Meetings:   handlers.NewMeetingHandler(services.NewMeetingService(repository.NewMeetingRepository(deps.DB), userRepo)),
		Invoices:   handlers.NewInvoiceHandler(services.NewInvoiceService(repository.NewInvoiceRepository(deps.DB))),
	}

	api := r.Group("/api")
	routes.Mount(api, routes.Table(h), middleware.RequireAuth(deps.Tokens, userRepo))

	return r, nil
}

// NewSessionStore returns a Redis-backed store when REDIS_HOST is set and a
// cookie store otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisHost != "" {
		rs, err := redisStore.NewStore(
			10,
			"tcp",
			net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			"",
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
