package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/auth"
	"github.com/tasknity/tasknity-api/internal/constants"
	apierrors "github.com/tasknity/tasknity-api/internal/errors"
	"github.com/tasknity/tasknity-api/internal/models"
	"github.com/tasknity/tasknity-api/internal/rbac"
	"github.com/tasknity/tasknity-api/internal/repository"
	"github.com/tasknity/tasknity-api/internal/token"
	"gorm.io/gorm"
)

// RequireAuth resolves the caller from a bearer token, falling back to the
// copy kept in the session cookie, and attaches an auth.Principal.
func RequireAuth(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw = sessionToken(c)
		}
		if raw == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			apierrors.Unauthorized(c, "")
			return
		}

		// the role stays the one in the token; this lookup only rejects
		// tokens of deleted users
		if _, err := users.FindByID(c.Request.Context(), claims.Subject); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "")
				return
			}
			apierrors.InternalError(c, "")
			return
		}

		principal := auth.Principal{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   claims.Role,
		}
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireRoles admits callers whose role is in roles. Owners always pass and
// an empty list admits everyone. It must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.InternalError(c, "guard misconfigured")
			return
		}
		if !rbac.Satisfies(principal.Role, roles) {
			apierrors.Forbidden(c, "")
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated caller from context
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := v.(auth.Principal)
	return principal, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	principal, ok := GetPrincipal(c)
	if !ok {
		return "", false
	}
	return principal.UserID, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

func sessionToken(c *gin.Context) string {
	// routers without the sessions middleware have no cookie fallback
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	v, ok := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	if !ok {
		return ""
	}
	return v
}
