package constants

import "time"

// ContextKeyPrincipal is the gin context key of the authenticated caller.
const ContextKeyPrincipal = "principal"

// Session cookie
const (
	SessionCookieName = "tasknity_session"
	SessionKeyToken   = "access_token"
	SessionMaxAge     = 86400 * 7
)

// Authentication
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
	MinNameLength     = 2
	BcryptCost        = 10
	DefaultTokenTTL   = 7 * 24 * time.Hour
	FallbackJWTSecret = "fallback-secret"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Listing limits
const (
	LeaderboardLimit      = 10
	UpcomingMeetingsLimit = 20
	TopPerformersLimit    = 5
	TopProjectsLimit      = 10
	ProductivityWindow    = 30 * 24 * time.Hour
)

const DefaultKudosEmoji = "🎉"
